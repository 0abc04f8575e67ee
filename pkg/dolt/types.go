package dolt

import "time"

// Status summarizes the working set of a Dolt repository. Clean is true when
// there is nothing to commit. Otherwise ModifiedTables and AddedTables map
// table names to a flag indicating whether the change is staged.
type Status struct {
	Clean          bool            `json:"clean"`
	ModifiedTables map[string]bool `json:"modifiedTables"`
	AddedTables    map[string]bool `json:"addedTables"`
}

// Table represents a Dolt table in the working set.
type Table struct {
	Name   string `json:"name"`
	Root   string `json:"root,omitempty"`
	Rows   int    `json:"rows,omitempty"`
	System bool   `json:"system,omitempty"`
}

// Commit represents metadata about a commit, including its hash, timestamp,
// and author. A commit created by a merge carries both parent hashes.
type Commit struct {
	Ref       string   `json:"ref"`
	Timestamp string   `json:"timestamp"`
	Author    string   `json:"author"`
	Email     string   `json:"email"`
	Message   string   `json:"message"`
	Parents   []string `json:"parents,omitempty"`
	Merge     bool     `json:"merge"`
}

// Branch represents a branch, along with the commit it points to.
type Branch struct {
	Name                 string `json:"name"`
	Hash                 string `json:"hash"`
	LatestCommitter      string `json:"latestCommitter,omitempty"`
	LatestCommitterEmail string `json:"latestCommitterEmail,omitempty"`
	LatestCommitDate     string `json:"latestCommitDate,omitempty"`
	LatestCommitMessage  string `json:"latestCommitMessage,omitempty"`
}

// Remote represents a remote, effectively a name and URL pair.
type Remote struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// KeyPair represents a key pair generated by Dolt for authentication with remotes.
type KeyPair struct {
	PublicKey string `json:"publicKey"`
	KeyID     string `json:"keyId"`
	Active    bool   `json:"active"`
}

// Tag represents a tag pointing at a commit.
type Tag struct {
	Name    string `json:"name"`
	Ref     string `json:"ref"`
	Message string `json:"message"`
}

// Row is a single result row of a CSV-formatted query, keyed by column name.
// Values are strings as produced by Dolt's CSV writer.
type Row map[string]string

// CommitOptions control how a commit is created.
type CommitOptions struct {
	AllowEmpty bool
	// Date overrides the commit timestamp. Zero means now.
	Date time.Time
}
