package ledger

import (
	"time"
)

const (
	borrowCommandType = "BorrowBook"
	returnCommandType = "ReturnBook"
)

// BorrowCommand represents the intent to borrow a book.
// UserName and BookTitle are the display snapshots denormalized into the
// new record; they are captured by the caller at borrow time.
type BorrowCommand struct {
	UserID     int
	BookID     int
	UserName   string
	BookTitle  string
	OccurredAt time.Time
}

// BuildBorrowCommand creates a new BorrowCommand with the provided parameters.
func BuildBorrowCommand(userID int, bookID int, userName string, bookTitle string, occurredAt time.Time) BorrowCommand {
	return BorrowCommand{
		UserID:     userID,
		BookID:     bookID,
		UserName:   userName,
		BookTitle:  bookTitle,
		OccurredAt: occurredAt,
	}
}

// CommandType returns the type identifier for this command, used for logging.
func (c BorrowCommand) CommandType() string {
	return borrowCommandType
}

// ReturnCommand represents the intent to return a borrowed book.
type ReturnCommand struct {
	RecordID   int
	OccurredAt time.Time
}

// BuildReturnCommand creates a new ReturnCommand with the provided parameters.
func BuildReturnCommand(recordID int, occurredAt time.Time) ReturnCommand {
	return ReturnCommand{
		RecordID:   recordID,
		OccurredAt: occurredAt,
	}
}

// CommandType returns the type identifier for this command, used for logging.
func (c ReturnCommand) CommandType() string {
	return returnCommandType
}
