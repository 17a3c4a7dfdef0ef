package main

import "github.com/pkg/errors"

var errNotTabSeparated = errors.New("expected \"label\\tsequence\" per line")
