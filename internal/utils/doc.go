// Package utils holds small formatting helpers shared by the CLI layer.
package utils
