// Package build runs a documentation build.
//
// A build is a fixed pipeline of stages (config, init, discover, read,
// resolve, write) followed by an always-run finish stage. Plugins from a
// plugin.Registry are called at the hook points of each stage. Reading
// fans out over a pool of workers; each worker owns per-plugin state that
// is merged back after every read wave.
//
// All execution paths (CLI build, watch, tests) go through Service.
package build
