package main

import "github.com/sirupsen/logrus"

// logrusLevelFor maps a METAGRAPH_LOG_LEVEL value to a logrus.Level,
// defaulting to Info for an empty or unrecognised value.
func logrusLevelFor(s string) logrus.Level {
	lvl, err := logrus.ParseLevel(s)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
