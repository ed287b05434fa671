// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the render, check, serve and publish modes,
// decoupled from any specific entrypoint like a CLI.
package app
