// Package library owns every shoot of the session. It is the only place where shoot state is
// mutated; readers always receive copies.
package library

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/majorfi/shootdesk/pkg/utils"
	"github.com/sirupsen/logrus"
)

/**************************************************************************************************
** Library is the shoot repository. Shoots are kept in creation order; a shoot's file order is
** the index space used for display and navigation.
**************************************************************************************************/
type Library struct {
	mu     sync.RWMutex
	shoots []*utils.TShoot
	logger *logrus.Logger
	now    func() time.Time
}

/**************************************************************************************************
** New creates an empty library.
**
** @param logger - Logger instance for output
** @return *Library - Empty library, or nil without a logger
**************************************************************************************************/
func New(logger *logrus.Logger) *Library {
	if logger == nil {
		return nil
	}
	return &Library{logger: logger, now: time.Now}
}

/**************************************************************************************************
** CreateOrAppend appends files, in order, to the shoot named by destinationID. When no
** destination is given or it does not resolve, a new shoot named "Shooting N" is created. An
** empty batch changes nothing.
**
** @param destinationID - Target shoot identifier, may be empty
** @param files - Accepted assets in arrival order
** @return string - Identifier of the shoot that received the files (empty for an empty batch)
** @return bool - True if a new shoot was created
**************************************************************************************************/
func (l *Library) CreateOrAppend(destinationID string, files []*utils.TImageAsset) (string, bool) {
	if len(files) == 0 {
		return "", false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if destinationID != "" {
		if shoot := l.find(destinationID); shoot != nil {
			shoot.Files = append(shoot.Files, files...)
			l.logger.Infof("📥 %d photo(s) added to %s", len(files), shoot.Name)
			return shoot.ID, false
		}
		l.logger.Warnf("Destination shoot %s not found, creating a new shoot", destinationID)
	}

	shoot := &utils.TShoot{
		ID:        uuid.NewString(),
		Name:      fmt.Sprintf("%s %d", utils.DefaultShootNamePrefix, len(l.shoots)+1),
		Files:     append([]*utils.TImageAsset(nil), files...),
		CreatedAt: l.now(),
	}
	l.shoots = append(l.shoots, shoot)
	l.logger.Infof("📁 %s created with %d photo(s)", shoot.Name, len(files))
	return shoot.ID, true
}

/**************************************************************************************************
** AddResultsShoot creates a shoot holding a remote tag-search payload. It has no files.
**
** @param tags - Searched tags, used to name the shoot
** @param results - Opaque backend results
** @return string - Identifier of the new shoot
**************************************************************************************************/
func (l *Library) AddResultsShoot(tags []string, results []json.RawMessage) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	shoot := &utils.TShoot{
		ID:        uuid.NewString(),
		Name:      utils.TagResultsNamePrefix + strings.Join(tags, ", "),
		Files:     []*utils.TImageAsset{},
		Results:   append([]json.RawMessage{}, results...),
		CreatedAt: l.now(),
	}
	l.shoots = append(l.shoots, shoot)
	l.logger.Infof("🏷️  %s created with %d result(s)", shoot.Name, len(results))
	return shoot.ID
}

/**************************************************************************************************
** Rename sets a new name, trimmed. A name that is empty after trimming is ignored.
**
** @return bool - True if the shoot was renamed
**************************************************************************************************/
func (l *Library) Rename(shootID, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	shoot := l.find(shootID)
	if shoot == nil {
		return false
	}
	shoot.Name = name
	return true
}

/**************************************************************************************************
** RemoveFile removes the file at index; later files move down by one. Unknown shoots and
** out-of-range indexes are ignored.
**
** @return bool - True if a file was removed
**************************************************************************************************/
func (l *Library) RemoveFile(shootID string, index int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	shoot := l.find(shootID)
	if shoot == nil || index < 0 || index >= len(shoot.Files) {
		return false
	}
	files := make([]*utils.TImageAsset, 0, len(shoot.Files)-1)
	files = append(files, shoot.Files[:index]...)
	files = append(files, shoot.Files[index+1:]...)
	shoot.Files = files
	return true
}

// ListAll returns copies of all shoots in creation order.
func (l *Library) ListAll() []utils.TShoot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]utils.TShoot, 0, len(l.shoots))
	for _, shoot := range l.shoots {
		out = append(out, snapshot(shoot))
	}
	return out
}

// Get returns a copy of one shoot.
func (l *Library) Get(shootID string) (utils.TShoot, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	shoot := l.find(shootID)
	if shoot == nil {
		return utils.TShoot{}, false
	}
	return snapshot(shoot), true
}

/**************************************************************************************************
** SelectionByIDs concatenates the files of the matching shoots: each shoot's own order, shoots in
** library order. Files are not de-duplicated across shoots; unknown ids are ignored.
**
** @param ids - Selected shoot identifiers
** @return []*utils.TImageAsset - New slice with the selected files
**************************************************************************************************/
func (l *Library) SelectionByIDs(ids []string) []*utils.TImageAsset {
	l.mu.RLock()
	defer l.mu.RUnlock()

	selected := make([]*utils.TImageAsset, 0)
	for _, shoot := range l.shoots {
		if utils.Contains(ids, shoot.ID) {
			selected = append(selected, shoot.Files...)
		}
	}
	return selected
}

// AllFiles returns every file of the library, shoot by shoot.
func (l *Library) AllFiles() []*utils.TImageAsset {
	l.mu.RLock()
	defer l.mu.RUnlock()

	all := make([]*utils.TImageAsset, 0)
	for _, shoot := range l.shoots {
		all = append(all, shoot.Files...)
	}
	return all
}

// Stats returns the library totals.
func (l *Library) Stats() utils.TLibraryStats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stats := utils.TLibraryStats{Shoots: len(l.shoots)}
	for _, shoot := range l.shoots {
		stats.Files += len(shoot.Files)
		for _, file := range shoot.Files {
			stats.TotalBytes += file.ByteSize
		}
	}
	stats.SizeLabel = utils.FormatBytes(stats.TotalBytes)
	return stats
}

func (l *Library) find(shootID string) *utils.TShoot {
	for _, shoot := range l.shoots {
		if shoot.ID == shootID {
			return shoot
		}
	}
	return nil
}

func snapshot(shoot *utils.TShoot) utils.TShoot {
	out := *shoot
	out.Files = append([]*utils.TImageAsset{}, shoot.Files...)
	out.Results = append([]json.RawMessage{}, shoot.Results...)
	return out
}
