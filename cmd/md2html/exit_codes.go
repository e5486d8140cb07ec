package main

// Process exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)
