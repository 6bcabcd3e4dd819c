package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/dmitrijs2005/trelloetl/internal/logging"
	"github.com/dmitrijs2005/trelloetl/internal/models"
	"github.com/dmitrijs2005/trelloetl/internal/runlog"
	"github.com/dmitrijs2005/trelloetl/internal/staging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExtractor returns a canned dataset or error.
type fakeExtractor struct {
	dataset *models.Dataset
	err     error
}

func (f *fakeExtractor) Run(context.Context) (*models.Dataset, error) {
	return f.dataset, f.err
}

// fakeDB records inserts and scripts; failures injectable.
type fakeDB struct {
	inserted  map[string]int
	scripts   []string
	insertErr map[string]error
	scriptErr error
}

func newFakeDB() *fakeDB {
	return &fakeDB{inserted: map[string]int{}, insertErr: map[string]error{}}
}

func (f *fakeDB) InsertRows(_ context.Context, table string, _ []string, rows [][]any) error {
	if err := f.insertErr[table]; err != nil {
		return err
	}
	f.inserted[table] = len(rows)
	return nil
}

func (f *fakeDB) ExecScript(_ context.Context, script string) error {
	f.scripts = append(f.scripts, script)
	return f.scriptErr
}

func (f *fakeDB) Close() error { return nil }

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sampleDataset() *models.Dataset {
	schema := "product"
	return &models.Dataset{
		Boards: []models.Board{
			{Name: "Product", ID: "B1", Included: true, SchemaName: &schema},
		},
		Members: []models.Member{{ID: "M1", Name: "Ann Lee", Username: "ann"}},
		Lists:   []models.List{{ID: "L1", Name: "Doing", BoardID: "B1"}},
		Comments: []models.Comment{
			{CardID: "C1", MemberID: "M1", Text: "done"},
		},
	}
}

func readLog(t *testing.T, store staging.Store) string {
	t.Helper()
	data, err := store.Read(context.Background(), staging.LogPath)
	require.NoError(t, err)
	return string(data)
}

func logLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\r\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func newPipeline(extractor DatasetExtractor, store staging.Store, runDB, adminDB *fakeDB) *Pipeline {
	logger := discardLogger()
	return New(extractor, store, runDB, adminDB, runlog.New(store, staging.LogPath, logger), logger)
}

func TestRun_HappyPathLoadsEveryTable(t *testing.T) {
	store := staging.NewMemoryStore()
	runDB := newFakeDB()
	adminDB := newFakeDB()
	p := newPipeline(&fakeExtractor{dataset: sampleDataset()}, store, runDB, adminDB)

	require.NoError(t, p.Run(context.Background()))

	// all ten tables staged and loaded
	for _, name := range models.TableNames {
		_, err := store.Read(context.Background(), staging.ObjectPath(name))
		require.NoError(t, err, "table %s not staged", name)
	}
	assert.Equal(t, 1, runDB.inserted[models.TableBoards])
	assert.Equal(t, 1, runDB.inserted[models.TableMembers])
	assert.Equal(t, 0, runDB.inserted[models.TableCards])

	// reset on the admin connection, finalize on the run connection
	require.Len(t, adminDB.scripts, 1)
	assert.Contains(t, adminDB.scripts[0], "DROP TABLE")
	require.Len(t, runDB.scripts, 1)
	assert.Contains(t, runDB.scripts[0], "VIEW")

	text := readLog(t, store)
	assert.Contains(t, text, "started.")
	assert.Contains(t, text, "Trello ETL run finished.")
	assert.True(t, strings.HasSuffix(text, strings.Repeat("*", 92)))
	assert.NotContains(t, text, "ERROR")
}

func TestRun_ExtractFailureAbortsEverything(t *testing.T) {
	store := staging.NewMemoryStore()
	runDB := newFakeDB()
	adminDB := newFakeDB()
	p := newPipeline(&fakeExtractor{err: errors.New("api down")}, store, runDB, adminDB)

	err := p.Run(context.Background())
	require.Error(t, err)

	// nothing staged, no scripts, no loads
	for _, name := range models.TableNames {
		_, readErr := store.Read(context.Background(), staging.ObjectPath(name))
		require.ErrorIs(t, readErr, staging.ErrNotFound)
	}
	assert.Empty(t, adminDB.scripts)
	assert.Empty(t, runDB.scripts)
	assert.Empty(t, runDB.inserted)

	text := readLog(t, store)
	assert.Contains(t, text, "ERROR: extraction failed")
	assert.Contains(t, text, "aborted")
	assert.True(t, strings.HasSuffix(text, strings.Repeat("*", 92)))
}

func TestRun_StagingFailureIsIsolatedPerTable(t *testing.T) {
	store := staging.NewMemoryStore()
	store.FailWrites(staging.ObjectPath(models.TableCards), errors.New("store unavailable"))
	runDB := newFakeDB()
	adminDB := newFakeDB()
	p := newPipeline(&fakeExtractor{dataset: sampleDataset()}, store, runDB, adminDB)

	require.NoError(t, p.Run(context.Background()))

	// comment staged even though card failed
	_, err := store.Read(context.Background(), staging.ObjectPath(models.TableComments))
	require.NoError(t, err)

	// exactly one staging failure entry, and it names the card file
	var failures []string
	for _, line := range logLines(readLog(t, store)) {
		if strings.Contains(line, "ERROR: staging") {
			failures = append(failures, line)
		}
	}
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0], "cardData.csv")

	// every other table still loaded; card had nothing to load
	assert.Equal(t, 1, runDB.inserted[models.TableComments])
	_, cardLoaded := runDB.inserted[models.TableCards]
	assert.False(t, cardLoaded)
}

func TestRun_SchemaResetFailureSkipsLoad(t *testing.T) {
	store := staging.NewMemoryStore()
	runDB := newFakeDB()
	adminDB := newFakeDB()
	adminDB.scriptErr = errors.New("permission denied")
	p := newPipeline(&fakeExtractor{dataset: sampleDataset()}, store, runDB, adminDB)

	require.NoError(t, p.Run(context.Background()))

	// no table loaded at all
	assert.Empty(t, runDB.inserted)

	var resetFailures []string
	for _, line := range logLines(readLog(t, store)) {
		if strings.Contains(line, "schema reset failed") {
			resetFailures = append(resetFailures, line)
		}
	}
	require.Len(t, resetFailures, 1)

	// finalize still ran, and the run still closed out
	require.Len(t, runDB.scripts, 1)
	assert.True(t, strings.HasSuffix(readLog(t, store), strings.Repeat("*", 92)))
}

func TestRun_LoadFailureIsIsolatedPerTable(t *testing.T) {
	store := staging.NewMemoryStore()
	runDB := newFakeDB()
	runDB.insertErr[models.TableMembers] = errors.New("type mismatch")
	adminDB := newFakeDB()
	p := newPipeline(&fakeExtractor{dataset: sampleDataset()}, store, runDB, adminDB)

	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, 1, runDB.inserted[models.TableBoards])
	assert.Equal(t, 1, runDB.inserted[models.TableComments])

	text := readLog(t, store)
	assert.Contains(t, text, "failed to load into table validmember")
}

func TestRun_FinalizeFailureIsLoggedOnly(t *testing.T) {
	store := staging.NewMemoryStore()
	runDB := newFakeDB()
	runDB.scriptErr = errors.New("missing role")
	adminDB := newFakeDB()
	p := newPipeline(&fakeExtractor{dataset: sampleDataset()}, store, runDB, adminDB)

	require.NoError(t, p.Run(context.Background()))

	text := readLog(t, store)
	assert.Contains(t, text, "ERROR: finalize script failed")
	assert.Contains(t, text, "Trello ETL run finished.")
}
