// Package staging round-trips the normalized tables through a durable
// object store as delimited text blobs, keyed by a fixed path per
// table. The store also holds the run log object.
package staging

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/trelloetl/internal/models"
)

// ErrNotFound is returned when the requested object does not exist.
// Match with errors.Is.
var ErrNotFound = errors.New("object not found")

// ObjectInfo describes one stored object.
type ObjectInfo struct {
	Path     string
	Modified time.Time
}

// Store is a key→blob object store. Write overwrites.
type Store interface {
	Write(ctx context.Context, path string, data []byte) error
	Read(ctx context.Context, path string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
}

// LogPath is the fixed location of the run log object.
const LogPath = "/ETL_log/trello_log.txt"

// tablePaths maps each destination table to its staging object.
var tablePaths = map[string]string{
	models.TableBoards:       "/boardData.csv",
	models.TableMembers:      "/memberData.csv",
	models.TableLists:        "/listData.csv",
	models.TableLabels:       "/labelData.csv",
	models.TableCards:        "/cardData.csv",
	models.TableFields:       "/validFieldData.csv",
	models.TableFieldValues:  "/fieldData.csv",
	models.TableFieldOptions: "/fieldOptionData.csv",
	models.TableChecklists:   "/checklistData.csv",
	models.TableComments:     "/commentData.csv",
}

// ObjectPath returns the staging path of a destination table.
func ObjectPath(table string) string {
	return tablePaths[table]
}

// AuditFreshness lists the top-level staging folder and returns the
// names of .csv objects whose modification date is not today. An empty
// result means every staged file is fresh.
func AuditFreshness(ctx context.Context, store Store, now time.Time) ([]string, error) {
	objects, err := store.List(ctx, "/")
	if err != nil {
		return nil, err
	}
	today := now.UTC().Format(models.DateOnly)
	var stale []string
	for _, o := range objects {
		if len(o.Path) < 4 || o.Path[len(o.Path)-4:] != ".csv" {
			continue
		}
		if o.Modified.UTC().Format(models.DateOnly) != today {
			stale = append(stale, o.Path)
		}
	}
	return stale, nil
}
