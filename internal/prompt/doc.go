// Package prompt asks yes/no questions on a line-oriented terminal.
package prompt
