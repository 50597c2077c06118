package lines

// BOM is the UTF-8 byte-order mark as a string.
const BOM = "\xef\xbb\xbf"
