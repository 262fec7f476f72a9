package models

// CommitInfo contains information about a git commit between base and head
type CommitInfo struct {
	// Hash is the full commit hash
	Hash string
	// Message is the first line of the commit message
	Message string
	// Files are the paths touched by this commit, relative to the repo root
	Files []string
	// Tickets are ticket IDs referenced in the full message, in order of appearance
	Tickets []string
}

// NewCommitInfo creates a new CommitInfo
func NewCommitInfo(hash, message string, files, tickets []string) CommitInfo {
	return CommitInfo{
		Hash:    hash,
		Message: message,
		Files:   files,
		Tickets: tickets,
	}
}

// ShortHash returns the first 8 characters of the hash
func (c CommitInfo) ShortHash() string {
	if len(c.Hash) > 8 {
		return c.Hash[:8]
	}
	return c.Hash
}

// Touches reports whether the commit modified the given path
func (c CommitInfo) Touches(path string) bool {
	for _, f := range c.Files {
		if f == path {
			return true
		}
	}
	return false
}

// References reports whether the commit message mentions the given ticket
func (c CommitInfo) References(ticket string) bool {
	for _, t := range c.Tickets {
		if t == ticket {
			return true
		}
	}
	return false
}

// HasTickets reports whether any ticket ID was found in the message
func (c CommitInfo) HasTickets() bool {
	return len(c.Tickets) > 0
}
