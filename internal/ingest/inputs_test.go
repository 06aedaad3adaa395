package ingest

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energy_balance/internal/model"
)

func memOpener(files map[string]string) Opener {
	return func(name string) (io.ReadCloser, error) {
		data, ok := files[name]
		if !ok {
			return nil, os.ErrNotExist
		}
		return io.NopCloser(strings.NewReader(data)), nil
	}
}

func TestLoadInputs(t *testing.T) {
	open := memOpener(map[string]string{
		"heating.csv": headerRow + ",10,8\n",
		"solar.csv":   "0,0\n",
	})
	manifest := map[model.TermKind]string{
		model.TermHeating: "heating.csv",
		model.TermSolar:   "solar.csv",
	}

	in, err := LoadInputs(manifest, open)

	require.NoError(t, err)
	require.Len(t, in.Heating, 1)
	assert.True(t, in.Heating[0].HasHeader())
	require.Len(t, in.Solar, 1)
	assert.Empty(t, in.Cooling)
}

func TestLoadInputs_MissingFile(t *testing.T) {
	manifest := map[model.TermKind]string{model.TermCooling: "cooling.csv"}

	_, err := LoadInputs(manifest, memOpener(nil))

	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "cooling")
}

func TestLoadInputs_FromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "people.csv")
	require.NoError(t, os.WriteFile(path, []byte("1,2,3\n4,5,6\n"), 0o644))

	in, err := LoadInputs(map[model.TermKind]string{model.TermPeople: path}, OpenFile)

	require.NoError(t, err)
	assert.Len(t, in.People, 2)
}
