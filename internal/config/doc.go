// The config package holds the defaults of the iddiff command.
//
// Configuration lives in a file called 'config' within a base directory,
// which defaults to $IDDIFF_BASE or $HOME/lib/iddiff. The file is optional;
// command line flags override what it says. Each line holds a key and a
// value separated by blanks; empty lines and lines starting with '#' are
// ignored. See the C struct for the keys.
package config
