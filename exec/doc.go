// Package exec runs external tools on behalf of the scaffolder.
//
// mintforge treats package managers and version control as opaque
// collaborators: the only thing the core logic needs from them is whether
// they exited zero. The Executor adds the UX around that call: a spinner
// for long-running commands when attached to a terminal, prefixed streaming
// output in verbose mode, and a friendlier error when a required tool is not
// installed. The command constructor is injectable so tests never spawn real
// processes.
package exec
