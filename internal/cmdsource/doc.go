// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdsource resolves the list of command lines to run.
//
// Commands come either from positional arguments or from a file. A file is
// read line by line, or as a YAML document with a top level `commands` list
// when its name ends in .yaml or .yml. Files that are not local are fetched
// with go-getter, so any source it understands can be used:
//
//	volley execute --from-file git::https://github.com/org/repo//ci/cmds.txt?ref=v1.0.0
package cmdsource
