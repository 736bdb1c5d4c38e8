package renamer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ai-renamer-be/pkg/fsaccess"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutor_Rename(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		setup     func() *fsaccess.MemoryDirectory
		old, new  string
		mode      RenameMode
		wantFinal string
		wantErr   error
		wantNames []string
	}{
		{
			name:      "free target",
			setup:     func() *fsaccess.MemoryDirectory { return fsaccess.NewMemoryDirectory("d").AddFile("scan.pdf", nil) },
			old:       "scan.pdf",
			new:       "invoice_jan.pdf",
			wantFinal: "invoice_jan.pdf",
			wantNames: []string{"invoice_jan.pdf"},
		},
		{
			name: "auto increment on conflict",
			setup: func() *fsaccess.MemoryDirectory {
				return fsaccess.NewMemoryDirectory("d").AddFile("a.txt", nil).AddFile("a(2).txt", nil).AddFile("b.txt", nil)
			},
			old:       "b.txt",
			new:       "a.txt",
			mode:      ModeAutoIncrement,
			wantFinal: "a(3).txt",
			wantNames: []string{"a.txt", "a(2).txt", "a(3).txt"},
		},
		{
			name: "subdirectory blocks target",
			setup: func() *fsaccess.MemoryDirectory {
				return fsaccess.NewMemoryDirectory("d").AddDirectory("report.pdf").AddFile("x.pdf", nil)
			},
			old:       "x.pdf",
			new:       "report.pdf",
			wantFinal: "report(2).pdf",
			wantNames: []string{"report.pdf", "report(2).pdf"},
		},
		{
			name: "error mode conflict leaves directory unchanged",
			setup: func() *fsaccess.MemoryDirectory {
				return fsaccess.NewMemoryDirectory("d").AddFile("a.txt", nil).AddFile("b.txt", nil)
			},
			old:       "b.txt",
			new:       "a.txt",
			mode:      ModeError,
			wantErr:   ErrNameConflict,
			wantNames: []string{"a.txt", "b.txt"},
		},
		{
			name:      "keeping the current name increments",
			setup:     func() *fsaccess.MemoryDirectory { return fsaccess.NewMemoryDirectory("d").AddFile("a.txt", nil) },
			old:       "a.txt",
			new:       "a.txt",
			wantFinal: "a(2).txt",
			wantNames: []string{"a(2).txt"},
		},
		{
			name:      "keeping the current name conflicts in error mode",
			setup:     func() *fsaccess.MemoryDirectory { return fsaccess.NewMemoryDirectory("d").AddFile("a.txt", nil) },
			old:       "a.txt",
			new:       "a.txt",
			mode:      ModeError,
			wantErr:   ErrNameConflict,
			wantNames: []string{"a.txt"},
		},
		{
			name:      "path separator rejected",
			setup:     func() *fsaccess.MemoryDirectory { return fsaccess.NewMemoryDirectory("d").AddFile("a.txt", nil) },
			old:       "a.txt",
			new:       "../a.txt",
			wantErr:   ErrRenameFailed,
			wantNames: []string{"a.txt"},
		},
		{
			name:      "missing source",
			setup:     func() *fsaccess.MemoryDirectory { return fsaccess.NewMemoryDirectory("d") },
			old:       "ghost.txt",
			new:       "b.txt",
			wantErr:   ErrRenameFailed,
			wantNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup()
			out := NewExecutor().Rename(ctx, dir, tt.old, tt.new, tt.mode)

			assert.Equal(t, tt.old, out.OldName)
			assert.Equal(t, tt.new, out.RequestedName)
			if tt.wantErr != nil {
				assert.ErrorIs(t, out.Err, tt.wantErr)
				assert.False(t, out.Renamed)
				assert.Empty(t, out.FinalName)
			} else {
				require.NoError(t, out.Err)
				assert.True(t, out.Renamed)
				assert.Equal(t, tt.wantFinal, out.FinalName)
			}
			assert.Equal(t, tt.wantNames, dir.Names())
		})
	}
}

func TestExecutor_PermissionAskedEveryCall(t *testing.T) {
	ctx := context.Background()
	dir := fsaccess.NewMemoryDirectory("d").AddFile("a.txt", nil).AddFile("b.txt", nil)
	exec := NewExecutor()

	out := exec.Rename(ctx, dir, "a.txt", "c.txt", ModeAutoIncrement)
	require.NoError(t, out.Err)

	dir.SetPermission(fsaccess.ModeReadWrite, fsaccess.PermissionDenied)
	out = exec.Rename(ctx, dir, "b.txt", "d.txt", ModeAutoIncrement)
	assert.ErrorIs(t, out.Err, ErrPermissionDenied)
	assert.Equal(t, []string{"c.txt", "b.txt"}, dir.Names())
	assert.Equal(t, 1, dir.MoveCount())
}

func TestExecutor_MoveFailureKeepsMessage(t *testing.T) {
	dir := fsaccess.NewMemoryDirectory("d").AddFile("a.txt", nil)
	dir.FailMove("a.txt", errors.New("device busy"))

	out := NewExecutor().Rename(context.Background(), dir, "a.txt", "b.txt", "")
	assert.ErrorIs(t, out.Err, ErrRenameFailed)
	assert.Contains(t, out.Message(), "device busy")
}

func TestExecutor_LocalDirectory(t *testing.T) {
	root := t.TempDir()
	for _, n := range []string{"a.txt", "a(2).txt", "b.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, n), []byte(n), 0o644))
	}
	dir, err := fsaccess.OpenLocalDirectory(root, true)
	require.NoError(t, err)

	out := NewExecutor().Rename(context.Background(), dir, "b.txt", "a.txt", ModeAutoIncrement)
	require.NoError(t, out.Err)
	assert.Equal(t, "a(3).txt", out.FinalName)

	files, err := ReadDirectory(context.Background(), dir)
	require.NoError(t, err)
	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"a.txt", "a(2).txt", "a(3).txt"}, names)

	content, err := os.ReadFile(filepath.Join(root, "a(3).txt"))
	require.NoError(t, err)
	assert.Equal(t, "b.txt", string(content))
}
