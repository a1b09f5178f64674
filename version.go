package main

// Version is the version of the bump command.
var Version = "1.0.0"
