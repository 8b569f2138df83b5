// Package formats provides parsers for the text asset formats the engine
// reads: Wavefront OBJ meshes and combined GLSL shader files.
//
// Parsers are pure: they never log and never touch the GPU. Recoverable
// problems are returned as data so callers decide how to report them.
package formats
