package persistance

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mrview/internal/pkg/fs"

	"github.com/mitchellh/go-homedir"
	"golang.org/x/exp/slices"
)

const (
	DefaultStatePath = "~/.config/mrview/state"
	maxVisited       = 20
)

type VisitedMergeRequest struct {
	ID          string    `json:"id"`
	Server      string    `json:"server"`
	Title       string    `json:"title,omitempty"`
	LastVisited time.Time `json:"lastVisited"`
}

type state struct {
	Visited []*VisitedMergeRequest `json:"visited,omitempty"`
}

type PersistanceRepo interface {
	AddVisited(server string, id string, title string) error
	GetVisited() ([]*VisitedMergeRequest, error)
}

type XDGPersistanceRepo struct {
	s    *state
	path string
	fs   fs.Filesystem
	now  func() time.Time
}

func NewXDGPersistanceRepo(path string, filesystem fs.Filesystem) *XDGPersistanceRepo {
	return &XDGPersistanceRepo{
		s:    &state{},
		path: path,
		fs:   filesystem,
		now:  time.Now,
	}
}

func (repo *XDGPersistanceRepo) statePath() (string, error) {
	return homedir.Expand(repo.path)
}

func (repo *XDGPersistanceRepo) load() error {
	path, err := repo.statePath()
	if err != nil {
		return err
	}

	repo.s = &state{}
	data, err := repo.fs.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	err = json.Unmarshal(data, repo.s)
	if err != nil {
		return fmt.Errorf("cannot load state file: %v", err)
	}

	return nil
}

func (repo *XDGPersistanceRepo) save() error {
	path, err := repo.statePath()
	if err != nil {
		return err
	}

	err = repo.fs.MkdirAll(filepath.Dir(path), 0700)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(repo.s, "", "  ")
	if err != nil {
		return err
	}

	return repo.fs.WriteFile(path, data, 0600)
}

// GetVisited returns the visited merge requests, most recent first.
func (repo *XDGPersistanceRepo) GetVisited() ([]*VisitedMergeRequest, error) {
	err := repo.load()
	if err != nil {
		return nil, err
	}

	visited := slices.Clone(repo.s.Visited)
	sortByLastVisited(visited)

	return visited, nil
}

func (repo *XDGPersistanceRepo) AddVisited(server string, id string, title string) error {
	err := repo.load()
	if err != nil {
		return err
	}

	entry := &VisitedMergeRequest{
		ID:          id,
		Server:      server,
		Title:       title,
		LastVisited: repo.now(),
	}

	index := slices.IndexFunc(
		repo.s.Visited,
		func(v *VisitedMergeRequest) bool {
			return v.ID == id && v.Server == server
		},
	)

	if index != -1 {
		repo.s.Visited[index] = entry
	} else {
		repo.s.Visited = append(repo.s.Visited, entry)
	}

	sortByLastVisited(repo.s.Visited)
	if len(repo.s.Visited) > maxVisited {
		repo.s.Visited = repo.s.Visited[:maxVisited]
	}

	return repo.save()
}

func sortByLastVisited(visited []*VisitedMergeRequest) {
	slices.SortStableFunc(visited, func(a, b *VisitedMergeRequest) bool {
		return a.LastVisited.After(b.LastVisited)
	})
}

var persistanceRepo PersistanceRepo = NewXDGPersistanceRepo(DefaultStatePath, fs.OS{})

func GetRepo() PersistanceRepo {
	return persistanceRepo
}
