// Command serifu compiles plain-text dialogue scripts into Premiere Pro
// timeline documents, synthesizing each line through a configurable
// external text-to-speech command.
package main
