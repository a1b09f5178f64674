// Package main implements the bump CLI tool.
//
// bump rewrites the first semantic version (MAJOR.MINOR.PATCH) on every line
// of its inputs, bumping it by the chosen level, and copies everything else
// through byte for byte. Line endings are kept as they are. Files are edited
// through a temporary file that replaces the original only once every line
// has been processed, so a failed run leaves the input untouched.
//
// Command Usage:
//
//	bump [global options] [command]
//
// Flags:
//
//	--input, -i:       File to process. May be repeated. "-" reads stdin and writes stdout.
//	--level, -l:       major, minor or patch, or the short forms M, m and p (default patch, $BUMP_LEVEL).
//	--output, -o:      Write the result to another file instead of editing the input in place.
//	--dry:             Print a unified diff of the changes without writing anything.
//	--workers:         Number of files processed concurrently (default 4).
//	--max-line-length: Longest accepted line in bytes (default 1048576).
//	--commit:          Stage and commit the rewritten files, with the new version as the message.
//	--tag:             With --commit, tag the commit with "v" + the new version.
//	--go-mod:          On a major bump, update the /vN suffix of the module path in DIR/go.mod.
//	--metrics-file:    Write Prometheus textfile metrics after the run.
//	--config:          YAML config file (default ./.bump.yaml when present).
//	--log-level:       debug, info, warn or error (default warn, $LOG_LEVEL).
//	--version, -v:     Print the version of bump.
//
// Commands:
//
//	scan: List every version found in the inputs, including the ones a bump
//	      would leave alone because they are not first on their line.
//
// Without --input and with a terminal on stdin, bump asks for the file, the
// level and where to write the result.
//
// Examples:
//
//	# Bump the patch version in VERSION (e.g. 1.2.3 → 1.2.4)
//	bump -i VERSION
//
//	# Bump the minor version in several files, then commit and tag v1.3.0
//	bump -i package.json -i README.md -l minor --commit --tag
//
//	# Show what a major bump would change
//	bump -i pom.xml -l M --dry
//
//	# Major bump of a Go module, keeping the go.mod module path in step
//	bump -i version.go -l major --go-mod . --commit --tag
//
//	# Filter
//	echo "release 0.9.9" | bump -i - -l m
//
// Config file:
//
//	level: minor
//	inputs: [VERSION, package.json]
//	git:
//	  commit: true
//	  tag: true
//
// Flags and environment variables take precedence over the config file.
//
// For the library, see the documentation of the "pkg" package.
package main
