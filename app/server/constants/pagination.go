package constants

const (
	PageSizeAuthors = 2
	PageSizeBooks   = 2
	PageSizeMyBooks = 10
)
