// Package utils holds small helpers shared by calclogic internals: a wall
// clock [Timer] and [JSONToString] for printable JSON.
package utils
