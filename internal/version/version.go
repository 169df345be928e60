// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.1.0"

// Milestones:
// 0.1.0 - Terminal orrery: perspective camera, orbit controls, labels, headless export
