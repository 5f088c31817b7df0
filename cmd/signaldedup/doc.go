// Package main hosts the signaldedup CLI entrypoint and command graph.
//
// The root command runs the full pipeline: discover capture files, hash and
// group them, print the duplicate tree and consolidate one copy per unique
// signal into the output directory. "scan" stops before consolidation and
// "config" scaffolds and checks configuration files.
//
// Exit status: 0 on success, when nothing was found and when the user
// declines; 1 on I/O failures; 2 on invalid flags, arguments or
// configuration.
package main
