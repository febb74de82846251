// Package commitengine implements spec.md §4.4: the change-detection guard,
// random commit-id generation, and the image/metadata write sequence.
//
// Grounded on the teacher's cmd/commit.go (the guard-then-write-then-
// update-refs sequencing) and core/fs.go's recursive copy, generalized from
// SHA-256 content hashing to the uniform-random 40-hex id spec.md requires
// (see DESIGN.md open question 4).
package commitengine

import (
	"crypto/rand"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/NahomAnteneh/wit/core"
	"github.com/NahomAnteneh/wit/internal/diff"
	"github.com/NahomAnteneh/wit/internal/refs"
	"github.com/NahomAnteneh/wit/internal/werr"
)

const idAlphabet = "0123456789abcdef"
const idLength = 40

// Metadata is the parsed form of an images/<id>.txt file.
type Metadata struct {
	Parent  string // "None", "<id>", or "<id>,<id>"
	Date    string
	Message string
}

// Parents splits Parent on its comma, returning the non-"None" parent ids.
func (m Metadata) Parents() []string {
	if m.Parent == "" || m.Parent == "None" {
		return nil
	}
	return strings.Split(m.Parent, ",")
}

// GenerateID draws a uniformly random 40-character lowercase hex-alphabet
// string (spec.md §3 / §6: "[a-f0-9], length 40").
func GenerateID() (string, error) {
	buf := make([]byte, idLength)
	if _, err := rand.Read(buf); err != nil {
		return "", werr.New(werr.IOFailure, "failed to generate commit id", err)
	}
	id := make([]byte, idLength)
	for i, b := range buf {
		id[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(id), nil
}

// FormatDate renders t in the spec's fixed RFC-style layout: "Day Mon DD
// HH:MM:SS YYYY +ZZZZ", local time with its zone offset.
func FormatDate(t time.Time) string {
	return t.Format("Mon Jan 02 15:04:05 2006 -0700")
}

// Commit performs spec.md §4.4's commit sequence: guard, id generation,
// image folder creation, metadata write, tree copy, and finally the
// reference update (flow=commit). mergeParent is "" for an ordinary commit.
func Commit(repo *core.Repository, message, mergeParent string, now time.Time) (string, error) {
	head, hasHead, err := currentHead(repo)
	if err != nil {
		return "", err
	}

	if hasHead {
		toBeCommitted, err := diff.ToBeCommitted(repo.StagingDir, repo.ImageDir(head))
		if err != nil {
			return "", err
		}
		if len(toBeCommitted) == 0 && mergeParent == "" {
			return "", werr.New(werr.NoChanges, "nothing to commit, staging area is clean", nil)
		}
	}

	id, err := GenerateID()
	if err != nil {
		return "", err
	}
	if repo.ImageExists(id) {
		return "", werr.New(werr.CommitIDCollision, "commit id already exists: "+id, nil)
	}

	if err := os.MkdirAll(repo.ImageDir(id), 0755); err != nil {
		return "", werr.New(werr.IOFailure, "failed to create image directory", err)
	}

	parent := "None"
	if hasHead {
		parent = head
	}
	if mergeParent != "" {
		parent = fmt.Sprintf("%s,%s", head, mergeParent)
	}

	meta := Metadata{Parent: parent, Date: FormatDate(now), Message: firstLine(message)}
	if err := writeMetadata(repo, id, meta); err != nil {
		return "", err
	}

	if err := core.MergeDir(repo.StagingDir, repo.ImageDir(id)); err != nil {
		return "", err
	}

	if err := refs.ApplyCommit(repo, id); err != nil {
		return "", err
	}

	return id, nil
}

// ReadMetadata loads and parses images/<id>.txt.
func ReadMetadata(repo *core.Repository, id string) (Metadata, error) {
	data, err := os.ReadFile(repo.ImageMetaFile(id))
	if err != nil {
		return Metadata{}, werr.New(werr.CommitNotFound, "commit not found: "+id, err)
	}
	var m Metadata
	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch key {
		case "parent":
			m.Parent = value
		case "date":
			m.Date = value
		case "message":
			m.Message = value
		}
	}
	return m, nil
}

func writeMetadata(repo *core.Repository, id string, m Metadata) error {
	content := fmt.Sprintf("parent=%s\ndate=%s\nmessage=%s\n", m.Parent, m.Date, m.Message)
	if err := os.WriteFile(repo.ImageMetaFile(id), []byte(content), 0644); err != nil {
		return werr.New(werr.IOFailure, "failed to write commit metadata", err)
	}
	return nil
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

// currentHead returns the repository's HEAD id, and false if no commit has
// been made yet (invariant 1 of spec.md §3).
func currentHead(repo *core.Repository) (string, bool, error) {
	if !refs.Exists(repo) {
		return "", false, nil
	}
	t, err := refs.Load(repo)
	if err != nil {
		return "", false, err
	}
	return t.Head, true, nil
}
