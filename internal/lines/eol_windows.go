//go:build windows

package lines

// EOL is the platform line terminator used when serializing output.
const EOL = "\r\n"
