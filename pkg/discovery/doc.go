// Package discovery provides the LAN discovery probe for display devices.
package discovery

// The probe is a single request/response exchange over UDP broadcast.
// The controller broadcasts a 5 byte query to port 46000 once per receive
// attempt, and every device listening on that port answers with a record
// carrying its MAC, IPv4 address, service port and name.
//
// A scan runs for a fixed window and never exits early. Responses are
// deduplicated by device address and the first answer wins.
