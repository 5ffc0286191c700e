package library

/**************************************************************************************************
** NextIndex returns the index after current in a list of n files, wrapping from the last file
** to the first. It returns -1 for an empty list.
**************************************************************************************************/
func NextIndex(current, n int) int {
	if n <= 0 {
		return -1
	}
	return (normalize(current, n) + 1) % n
}

/**************************************************************************************************
** PreviousIndex returns the index before current in a list of n files, wrapping from the first
** file to the last. It returns -1 for an empty list.
**************************************************************************************************/
func PreviousIndex(current, n int) int {
	if n <= 0 {
		return -1
	}
	return (normalize(current, n) - 1 + n) % n
}

func normalize(i, n int) int {
	return ((i % n) + n) % n
}
