// Copyright 2025 The Spectra Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SourceExt is the extension, compared case-insensitively, that selects files
// in directory mode.
const SourceExt = ".png"

var (
	ErrInputNotFound = errors.New("batch: input does not exist")
	ErrNoFilesFound  = errors.New("batch: no PNG files found in directory")
)

// Target is a resolved command line target.
type Target struct {
	// Dir is whether the target named a directory.
	Dir  bool
	Jobs []Job
}

// Resolve turns the input argument into a list of jobs.
//
// A file yields a single job, using outputPath if it is non-empty. A
// directory yields one job per immediate PNG entry, in directory order, and
// outputPath is ignored. A directory without PNG entries returns a Target
// with Dir set and an error wrapping ErrNoFilesFound.
func Resolve(inputPath string, outputPath string) (Target, error) {
	info, err := os.Stat(inputPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Target{}, fmt.Errorf("%w: %q", ErrInputNotFound, inputPath)
	} else if err != nil {
		return Target{}, err
	}

	if !info.IsDir() {
		return Target{Jobs: []Job{NewJob(inputPath, outputPath)}}, nil
	}

	paths, err := FindPNGs(inputPath)
	if err != nil {
		return Target{Dir: true}, err
	}
	if len(paths) == 0 {
		return Target{Dir: true}, fmt.Errorf("%w: %q", ErrNoFilesFound, inputPath)
	}
	jobs := make([]Job, 0, len(paths))
	for _, p := range paths {
		jobs = append(jobs, NewJob(p, ""))
	}
	return Target{Dir: true, Jobs: jobs}, nil
}

// FindPNGs lists the non-directory entries of dir whose extension is ".png"
// in any letter case. It does not recurse.
func FindPNGs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.EqualFold(filepath.Ext(name), SourceExt) {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}
