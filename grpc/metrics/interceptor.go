package metrics

import (
	"context"
	"fmt"
	"strings"

	grpc_core "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/the-1ndex/mmm/grpc"
	"github.com/the-1ndex/mmm/grpc/client"
	"github.com/the-1ndex/mmm/metrics"
)

const (
	grpcRequestPackageAttributeKey = "grpc.request.package"
	grpcRequestServiceAttributeKey = "grpc.request.service"
	grpcRequestMethodAttributeKey  = "grpc.request.method"

	grpcResponseStatusCodeAttributeKey      = "grpc.response.statusCode"
	grpcResponseStatusMessageAttributeKey   = "grpc.response.statusMessage"
	grpcResponseStatusCodeLevelAttributeKey = "grpc.response.statusCodeLevel"

	resultCodeAttributeKey      = "mmm.response.resultCode"
	resultCodeLevelAttributeKey = "mmm.response.resultCodeLevel"

	clientUserAgentAttributeKey = "grpc.client.userAgent"

	resultFieldName = "result"

	infoLevel    = "info"
	warningLevel = "warning"
	errorLevel   = "error"
)

type traceStatusCodeHandler func(metrics.Trace, *status.Status)
type traceResultCodeHandler func(metrics.Trace, string)

var (
	traceStatusCodeHandlers = map[codes.Code]traceStatusCodeHandler{
		codes.OK:                 infoTraceStatusCodeHandler,
		codes.Aborted:            infoTraceStatusCodeHandler,
		codes.AlreadyExists:      infoTraceStatusCodeHandler,
		codes.Canceled:           infoTraceStatusCodeHandler,
		codes.DeadlineExceeded:   infoTraceStatusCodeHandler,
		codes.FailedPrecondition: infoTraceStatusCodeHandler,
		codes.InvalidArgument:    infoTraceStatusCodeHandler,
		codes.NotFound:           infoTraceStatusCodeHandler,
		codes.OutOfRange:         infoTraceStatusCodeHandler,
		codes.PermissionDenied:   infoTraceStatusCodeHandler,
		codes.ResourceExhausted:  infoTraceStatusCodeHandler,
		codes.Unauthenticated:    infoTraceStatusCodeHandler,
		codes.Unimplemented:      infoTraceStatusCodeHandler,

		codes.Unavailable: warningTraceStatusCodeHandler,
		codes.Unknown:     warningTraceStatusCodeHandler,

		codes.Internal: errorTraceStatusCodeHandler,
		codes.DataLoss: errorTraceStatusCodeHandler,
	}
	defaultTraceStatusCodeHandler = infoTraceStatusCodeHandler

	traceResultCodeHandlers = map[string]traceResultCodeHandler{
		"OK":        infoTraceResultCodeHandler,
		"NOT_FOUND": infoTraceResultCodeHandler,

		"INDEX_DISABLED": warningTraceResultCodeHandler,
	}
	defaultTraceResultCodeHandler = infoTraceResultCodeHandler
)

func infoTraceStatusCodeHandler(trace metrics.Trace, s *status.Status) {
	addStatusAttributes(trace, s, infoLevel)
}

func warningTraceStatusCodeHandler(trace metrics.Trace, s *status.Status) {
	addStatusAttributes(trace, s, warningLevel)
}

func errorTraceStatusCodeHandler(trace metrics.Trace, s *status.Status) {
	addStatusAttributes(trace, s, errorLevel)
	trace.OnError(fmt.Errorf("gRPC Status: %s - %s", s.Code().String(), s.Message()))
}

func addStatusAttributes(trace metrics.Trace, s *status.Status, level string) {
	trace.AddAttribute(grpcResponseStatusCodeAttributeKey, s.Code().String())
	trace.AddAttribute(grpcResponseStatusMessageAttributeKey, s.Message())
	trace.AddAttribute(grpcResponseStatusCodeLevelAttributeKey, level)
}

func infoTraceResultCodeHandler(trace metrics.Trace, resultCode string) {
	trace.AddAttribute(resultCodeAttributeKey, resultCode)
	trace.AddAttribute(resultCodeLevelAttributeKey, infoLevel)
}

func warningTraceResultCodeHandler(trace metrics.Trace, resultCode string) {
	trace.AddAttribute(resultCodeAttributeKey, resultCode)
	trace.AddAttribute(resultCodeLevelAttributeKey, warningLevel)
}

// UnaryServerInterceptor creates a unary server interceptor that uses the
// generic metrics.Provider interface.
func UnaryServerInterceptor(provider metrics.Provider) grpc_core.UnaryServerInterceptor {
	if provider == nil {
		return func(ctx context.Context, req interface{}, info *grpc_core.UnaryServerInfo, handler grpc_core.UnaryHandler) (interface{}, error) {
			return handler(ctx, req)
		}
	}

	return func(ctx context.Context, req interface{}, info *grpc_core.UnaryServerInfo, handler grpc_core.UnaryHandler) (interface{}, error) {
		// Inject the provider to allow for any custom metrics, events, etc
		// in downstream code.
		ctx = metrics.NewProviderContext(ctx, provider)

		trace := provider.StartTrace(strings.TrimPrefix(info.FullMethod, "/"))
		defer trace.End()

		ctx = metrics.NewContext(ctx, trace)

		includeParsedFullMethodName(trace, info.FullMethod)
		includeClientMetadata(ctx, trace)

		resp, err := handler(ctx, req)
		includeGRPCStatusCode(trace, err)
		if err != nil {
			return nil, err
		}

		includeResultCode(trace, resp)

		return resp, nil
	}
}

// StreamServerInterceptor creates a stream server interceptor that uses the
// generic metrics.Provider interface.
func StreamServerInterceptor(provider metrics.Provider) grpc_core.StreamServerInterceptor {
	if provider == nil {
		return func(srv interface{}, ss grpc_core.ServerStream, info *grpc_core.StreamServerInfo, handler grpc_core.StreamHandler) error {
			return handler(srv, ss)
		}
	}

	return func(srv interface{}, ss grpc_core.ServerStream, info *grpc_core.StreamServerInfo, handler grpc_core.StreamHandler) error {
		// Inject the provider to allow for any custom metrics, events, etc
		// in downstream code.
		ctx := metrics.NewProviderContext(ss.Context(), provider)

		trace := provider.StartTrace(strings.TrimPrefix(info.FullMethod, "/"))
		defer trace.End()

		ctx = metrics.NewContext(ctx, trace)

		includeParsedFullMethodName(trace, info.FullMethod)
		includeClientMetadata(ctx, trace)

		err := handler(srv, newWrappedStream(ctx, trace, ss))
		includeGRPCStatusCode(trace, err)
		return err
	}
}

type wrappedStream struct {
	ctx   context.Context
	trace metrics.Trace
	grpc_core.ServerStream
}

func (w *wrappedStream) Context() context.Context {
	return w.ctx
}

func (w *wrappedStream) SendMsg(m interface{}) error {
	includeResultCode(w.trace, m)
	return w.ServerStream.SendMsg(m)
}

func newWrappedStream(ctx context.Context, trace metrics.Trace, wrapped grpc_core.ServerStream) grpc_core.ServerStream {
	return &wrappedStream{ctx, trace, wrapped}
}

func includeGRPCStatusCode(trace metrics.Trace, err error) {
	grpcStatus := status.Convert(err)
	handler, ok := traceStatusCodeHandlers[grpcStatus.Code()]
	if !ok {
		handler = defaultTraceStatusCodeHandler
	}
	handler(trace, grpcStatus)
}

// includeResultCode augments the trace with the response's result code. Struct
// responses carry it as a string field named result, typed messages as a
// result field of an enum named Result.
func includeResultCode(trace metrics.Trace, resp interface{}) {
	var resultCode string
	switch typed := resp.(type) {
	case *structpb.Struct:
		resultCode = typed.GetFields()[resultFieldName].GetStringValue()
	case proto.Message:
		resultCode = getResultEnumName(typed.ProtoReflect())
	}
	if len(resultCode) == 0 {
		return
	}

	resultCode = strings.ToUpper(resultCode)
	handler, ok := traceResultCodeHandlers[resultCode]
	if !ok {
		defaultTraceResultCodeHandler(trace, resultCode)
	} else {
		handler(trace, resultCode)
	}
}

func getResultEnumName(reflected protoreflect.Message) string {
	// Check whether the response message has an enum called Result
	resultEnumDescriptor := reflected.Descriptor().Enums().ByName("Result")
	if resultEnumDescriptor == nil {
		return ""
	}

	// Check whether the response message has an enum field called result
	resultFieldDescriptor := reflected.Descriptor().Fields().ByName(resultFieldName)
	if resultFieldDescriptor == nil || resultFieldDescriptor.Kind() != protoreflect.EnumKind {
		return ""
	}

	resultEnum := resultEnumDescriptor.Values().ByNumber(reflected.Get(resultFieldDescriptor).Enum())
	if resultEnum == nil {
		return ""
	}
	return string(resultEnum.Name())
}

func includeParsedFullMethodName(trace metrics.Trace, fullMethodName string) {
	packageName, serviceName, methodName, err := grpc.ParseFullMethodName(fullMethodName)
	if err != nil {
		return
	}

	trace.AddAttribute(grpcRequestPackageAttributeKey, packageName)
	trace.AddAttribute(grpcRequestServiceAttributeKey, serviceName)
	trace.AddAttribute(grpcRequestMethodAttributeKey, methodName)
}

func includeClientMetadata(ctx context.Context, trace metrics.Trace) {
	userAgent, err := client.GetUserAgent(ctx)
	if err == nil {
		trace.AddAttribute(clientUserAgentAttributeKey, userAgent.String())
	}
}
