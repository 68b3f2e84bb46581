// Package notify reports deployment progress and the final outcome to the CI
// host.
//
// A Sink receives leveled messages: Debug, Info and Notice are informational,
// Fail marks the run as failed. The GitHub sink renders workflow commands
// (::debug::, ::notice::, ::error::) so the runner annotates the job; the
// console sink prints status lines, colored when stdout is a terminal. A
// Forwarder can wrap either sink and publish the final Notice or Fail to an
// ntfy topic without changing what the CI host sees.
package notify
