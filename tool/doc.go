// Package tool binds typed handlers to MCP tools.
//
// A Tool declares its name, description and string parameters; the same
// declaration produces the JSON schema advertised to the host. On every
// call the Registry binds the raw arguments to the handler's argument
// struct, enforces its validate tags, and only then invokes the handler,
// exactly once. Results are normalised into MCP tool results: one text
// item on success, an isError result carrying the error text otherwise.
package tool
