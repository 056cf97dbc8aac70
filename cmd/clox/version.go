package main

// version is the interpreter version printed by --version and by the
// startup banner in both file and REPL mode.
const version = "0.1.0"
