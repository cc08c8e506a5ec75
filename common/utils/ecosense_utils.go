/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package utils

import (
	"strconv"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/common"
	"github.com/spf13/cast"
)

// The below code was picked from edgex source code
func ParseSimpleValueToFloat64(valueType string, value string) (valFloat float64, err error) {
	var val interface{}
	switch valueType {
	case common.ValueTypeUint8:
		val, err = strconv.ParseUint(value, 10, 8)
		if err == nil {
			return float64(val.(uint64)), nil
		}
	case common.ValueTypeUint16:
		val, err = strconv.ParseUint(value, 10, 16)
		if err == nil {
			return float64(val.(uint64)), nil
		}
	case common.ValueTypeUint32:
		val, err = strconv.ParseUint(value, 10, 32)
		if err == nil {
			return float64(val.(uint64)), nil
		}
	case common.ValueTypeUint64:
		val, err = strconv.ParseUint(value, 10, 64)
		if err == nil {
			return float64(val.(uint64)), nil
		}
	case common.ValueTypeInt8:
		val, err = strconv.ParseInt(value, 10, 8)
		if err == nil {
			return float64(val.(int64)), nil
		}
	case common.ValueTypeInt16:
		val, err = strconv.ParseInt(value, 10, 16)
		if err == nil {
			return float64(val.(int64)), nil
		}
	case common.ValueTypeInt32:
		val, err = strconv.ParseInt(value, 10, 32)
		if err == nil {
			return float64(val.(int64)), nil
		}
	case common.ValueTypeInt64:
		val, err = strconv.ParseInt(value, 10, 64)
		if err == nil {
			return float64(val.(int64)), nil
		}
	case common.ValueTypeFloat32:
		val, err = strconv.ParseFloat(value, 32)
		if err == nil {
			return val.(float64), nil
		}
	case common.ValueTypeFloat64:
		val, err = strconv.ParseFloat(value, 64)
		if err == nil {
			return val.(float64), nil
		}
	}

	return 0, err
}

func ToFloat64(value interface{}) (float64, error) {
	return cast.ToFloat64E(value)
}

func Contains(s []string, e string) bool {
	for _, a := range s {
		if a == e {
			return true
		}
	}
	return false
}
