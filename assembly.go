/*
Copyright 2023 Lee R. Boynton

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/boynton/smithygen/smithy"
)

var ImportFileExtensions = map[string]func(path string) (*smithy.AST, error){
	".json": smithy.LoadAST,
	".yaml": smithy.LoadYAML,
	".yml":  smithy.LoadYAML,
}

func expandPaths(paths []string) ([]string, error) {
	var result []string
	for _, path := range paths {
		ext := filepath.Ext(path)
		if _, ok := ImportFileExtensions[ext]; ok {
			result = append(result, path)
			continue
		}
		fi, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !fi.IsDir() {
			return nil, errors.Errorf("parse for file type %q not implemented", ext)
		}
		err = filepath.Walk(path, func(wpath string, info os.FileInfo, errIncoming error) error {
			if errIncoming != nil {
				return errIncoming
			}
			if _, ok := ImportFileExtensions[filepath.Ext(wpath)]; ok && !info.IsDir() {
				result = append(result, wpath)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// AssembleModel loads and merges the model files, then resolves applies and mixins.
func AssembleModel(paths []string) (*smithy.AST, error) {
	flatPathList, err := expandPaths(paths)
	if err != nil {
		return nil, err
	}
	if len(flatPathList) == 0 {
		return nil, errors.New("no model files found")
	}
	assembly := &smithy.AST{}
	for _, path := range flatPathList {
		load := ImportFileExtensions[filepath.Ext(path)]
		ast, err := load(path)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot load %s", path)
		}
		if err := assembly.Merge(ast); err != nil {
			return nil, errors.Wrapf(err, "cannot merge %s", path)
		}
	}
	if err := assembly.ApplyAll(); err != nil {
		return nil, errors.Wrap(err, "cannot apply traits")
	}
	if err := assembly.ExpandMixins(); err != nil {
		return nil, errors.Wrap(err, "cannot expand mixins")
	}
	if err := assembly.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}
	return assembly, nil
}
