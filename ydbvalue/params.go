// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package ydbvalue

import (
	"fmt"
	"strings"

	"github.com/ydb-platform/ydb-go-genproto/protos/Ydb"
)

// EncodeParams encodes named query parameters. Names gain a leading "$"
// when it is missing. Two names that collide after prefixing are an error.
func EncodeParams(params map[string]Value) (map[string]*Ydb.TypedValue, error) {
	out := make(map[string]*Ydb.TypedValue, len(params))
	for name, v := range params {
		key := ParamName(name)
		if _, dup := out[key]; dup {
			return nil, newError(CodeCustom, fmt.Sprintf("duplicate parameter %s", key))
		}
		tv, err := EncodeTyped(v)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", key, err)
		}
		out[key] = tv
	}
	return out, nil
}

// ParamName returns name with a leading "$".
func ParamName(name string) string {
	if strings.HasPrefix(name, "$") {
		return name
	}
	return "$" + name
}
