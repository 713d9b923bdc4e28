// Package config defines the pipeline configuration model and its HCL
// loader. Every block and attribute is optional; compiled-in defaults make a
// bare invocation work against the conventional repository layout, and an
// `env` object is exposed to expressions so paths can reference environment
// variables.
package config
