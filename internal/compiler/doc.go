// Package compiler turns the three logical build operations (compile a
// source into an object, pack objects into a static archive, link archives
// into an executable) into toolchain subprocess invocations.
//
// Two toolchain families are supported and selected by the configured
// compiler name:
//
//	gcc, g++       GNU, archived with `ar`
//	clang, clang++ LLVM, archived with `llvm-ar`
//
// Command lines:
//
//	<cc> -c <src> -o <dest> -I<include>...
//	<ar> -crs <dest> <objects>...
//	<cc> -o <dest> <archives>...
//
// Any non-zero exit is reported as a *CompilationError carrying the tool
// name and its captured standard error. Standard output is discarded.
package compiler
