// Package audit emits security-relevant events (logins, user management,
// record submission, exports) in RFC5424 syslog format, optionally
// persisting them to an audit database.
package audit
