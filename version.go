package main

// Version indicates the current build version.
var Version = "dev"
