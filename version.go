package xmltree

// Version is the library's own version string, independent of the XML
// versions of documents it parses.
const Version = "0.1.0"
