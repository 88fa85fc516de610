// Package utils provides safe parameter extraction for MCP tool requests.
package utils

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// GetStringParam safely extracts a string parameter from the request
func GetStringParam(req mcp.CallToolRequest, key string, required bool) (string, error) {
	val, exists := req.GetArguments()[key]
	if !exists || val == nil {
		if required {
			return "", fmt.Errorf("missing required parameter: '%s'", key)
		}
		return "", nil
	}

	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("parameter '%s' must be a string", key)
	}

	return str, nil
}

// GetRequiredStringParam is a shorthand for GetStringParam with required=true
func GetRequiredStringParam(req mcp.CallToolRequest, key string) (string, error) {
	return GetStringParam(req, key, true)
}

// GetOptionalStringParam is a shorthand for GetStringParam with required=false
func GetOptionalStringParam(req mcp.CallToolRequest, key string) (string, error) {
	return GetStringParam(req, key, false)
}

// GetStringSliceParam safely extracts an array-of-strings parameter from the
// request, rejecting arrays with non-string elements.
func GetStringSliceParam(req mcp.CallToolRequest, key string, required bool) ([]string, error) {
	val, exists := req.GetArguments()[key]
	if !exists || val == nil {
		if required {
			return nil, fmt.Errorf("missing required parameter: '%s'", key)
		}
		return nil, nil
	}

	arr, ok := val.([]any)
	if !ok {
		return nil, fmt.Errorf("parameter '%s' must be an array of strings", key)
	}

	values := make([]string, 0, len(arr))
	for _, item := range arr {
		str, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("parameter '%s' must contain only strings", key)
		}
		values = append(values, str)
	}

	return values, nil
}

// GetRequiredStringSliceParam is a shorthand for GetStringSliceParam with required=true
func GetRequiredStringSliceParam(req mcp.CallToolRequest, key string) ([]string, error) {
	return GetStringSliceParam(req, key, true)
}

// HandleParameterError returns a properly formatted error response for parameter validation errors
func HandleParameterError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("invalid_argument: %v", err))
}
