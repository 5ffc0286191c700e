package utils

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

/**************************************************************************************************
** RemoveEmptyStrings removes all empty strings from a string array and returns a new array
** without the empty strings. Preserves the order of non-empty strings.
**
** @param arr - Array to process
** @return []string - New array containing only non-empty strings
**************************************************************************************************/
func RemoveEmptyStrings(arr []string) []string {
	result := make([]string, 0, len(arr))

	for _, str := range arr {
		if str != "" {
			result = append(result, str)
		}
	}

	return result
}

/**************************************************************************************************
** Contains checks if a string is present in a slice of strings.
**
** @param list - Slice of strings to search
** @param s - String to search for
** @return bool - True if string is present in slice, false otherwise
**************************************************************************************************/
func Contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// IsImageMediaType reports whether a declared media type is image/*.
func IsImageMediaType(mediaType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mediaType)), "image/")
}

/**************************************************************************************************
** FormatBytes renders a byte count in megabytes with two decimals, e.g. "12.34 Mo".
**************************************************************************************************/
func FormatBytes(n int64) string {
	if n <= 0 {
		return "0 Mo"
	}
	return fmt.Sprintf("%.2f Mo", float64(n)/(1024*1024))
}

// IntPtr returns nil for zero or negative values so that "0" means "no bound".
func IntPtr(v int) *int {
	if v <= 0 {
		return nil
	}
	return &v
}

func byteReader(data []byte) io.Reader {
	return bytes.NewReader(data)
}
