package ingest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/majorfi/shootdesk/pkg/utils"
)

/**************************************************************************************************
** LoadPath builds raw files from a file or a directory on disk. Directories are walked
** recursively in lexical order and hidden entries are skipped. The declared media type is
** detected from the file content.
**
** @param path - File or directory path
** @return []RawFile - Raw files in walk order
** @return error - Any error that occurred while reading the tree
**************************************************************************************************/
func LoadPath(path string) ([]RawFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	if !info.IsDir() {
		file, err := loadFile(path, info)
		if err != nil {
			return nil, err
		}
		return []RawFile{file}, nil
	}

	files := make([]RawFile, 0)
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if p != path && d.Name()[0] == '.' {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		file, err := loadFile(p, info)
		if err != nil {
			return err
		}
		files = append(files, file)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", path, err)
	}
	return files, nil
}

func loadFile(path string, info fs.FileInfo) (RawFile, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return RawFile{}, fmt.Errorf("error detecting media type of %s: %w", path, err)
	}
	return RawFile{
		Name:         filepath.Base(path),
		MediaType:    mt.String(),
		Size:         info.Size(),
		LastModified: info.ModTime().UnixMilli(),
		Handle:       utils.FileHandle{Path: path},
	}, nil
}
