// Package config defines the format-agnostic configuration model for a
// sequence: the set of task specifications and run-wide policy a Loader
// produces from whatever file format it reads. Concrete loaders (HCL, or any
// other format) live in their own packages and only need to satisfy Loader.
package config
