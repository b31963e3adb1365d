package main

import (
	"fmt"
	"os"
	"strings"
)

// Path locates the campus map document: either a JSON file on disk or a
// MongoDB "{db}.{col}" pair.
type Path struct {
	File string
	DB   string
	Coll string
}

func NewPath(filePathOrColl string) (*Path, error) {
	// a path that exists on disk wins over the db.col interpretation
	if _, err := os.Stat(filePathOrColl); err == nil {
		return &Path{File: filePathOrColl}, nil
	}
	dbDotColl := strings.TrimSpace(filePathOrColl)
	if dbDotColl == "" {
		return nil, nil
	}
	splitted := strings.Split(dbDotColl, ".")
	if len(splitted) != 2 {
		return nil, fmt.Errorf("dbDotColl is invalid: %s", dbDotColl)
	}
	return &Path{DB: splitted[0], Coll: splitted[1]}, nil
}

func (p *Path) IsFile() bool { return p.File != "" }

// CacheKey is the file name the downloaded document is cached under.
func (p *Path) CacheKey() string {
	return p.DB + "." + p.Coll + ".json"
}

func (p *Path) String() string {
	if p.IsFile() {
		return p.File
	}
	return p.DB + "." + p.Coll
}
