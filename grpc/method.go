package grpc

import (
	"strings"

	"github.com/pkg/errors"
)

// ParseFullMethodName splits a gRPC full method name of the form
// /package.Service/Method into its parts. The package may itself contain
// dots, e.g. /mmm.address.v1.Address/Derive.
func ParseFullMethodName(fullMethodName string) (packageName, serviceName, methodName string, err error) {
	trimmed := strings.TrimPrefix(fullMethodName, "/")

	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 || len(parts[0]) == 0 || len(parts[1]) == 0 {
		return "", "", "", errors.Errorf("invalid full method name: %s", fullMethodName)
	}
	methodName = parts[1]

	lastDot := strings.LastIndex(parts[0], ".")
	if lastDot <= 0 || lastDot == len(parts[0])-1 {
		return "", "", "", errors.Errorf("invalid full method name: %s", fullMethodName)
	}
	packageName = parts[0][:lastDot]
	serviceName = parts[0][lastDot+1:]

	return packageName, serviceName, methodName, nil
}
