// Package input provides interactive terminal input utilities.
package input
