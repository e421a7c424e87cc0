package grpc

import (
	"context"
	"fmt"
	"strconv"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	dataapp "github.com/Aixtrade/Tally/internal/application/data"
	grpcinfra "github.com/Aixtrade/Tally/internal/infrastructure/grpc"
	apperrors "github.com/Aixtrade/Tally/pkg/errors"
	"github.com/Aixtrade/Tally/pkg/jsonvalue"
)

const (
	ServiceName     = "tally.v1.AggregatorService"
	AggregateMethod = "/" + ServiceName + "/Aggregate"
)

// AggregatorServer is the server API for tally.v1.AggregatorService.
type AggregatorServer interface {
	Aggregate(context.Context, *structpb.ListValue) (*structpb.Struct, error)
}

func aggregateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.ListValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AggregatorServer).Aggregate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: AggregateMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AggregatorServer).Aggregate(ctx, req.(*structpb.ListValue))
	}
	return interceptor(ctx, in, info, handler)
}

var AggregatorServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AggregatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Aggregate",
			Handler:    aggregateHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tally/v1/aggregator.proto",
}

// AggregatorClient calls tally.v1.AggregatorService.
type AggregatorClient struct {
	cc grpc.ClientConnInterface
}

func NewAggregatorClient(cc grpc.ClientConnInterface) *AggregatorClient {
	return &AggregatorClient{cc: cc}
}

func (c *AggregatorClient) Aggregate(ctx context.Context, in *structpb.ListValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, AggregateMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// AggregatorService serves aggregation over gRPC.
type AggregatorService struct {
	service *dataapp.Service
}

func NewAggregatorService(service *dataapp.Service) *AggregatorService {
	return &AggregatorService{service: service}
}

// Aggregate returns {"string_len", "int_sum", "int_sum_exact"}. Struct numbers
// are doubles, so int_sum_exact carries the sum as a decimal string.
func (s *AggregatorService) Aggregate(ctx context.Context, in *structpb.ListValue) (*structpb.Struct, error) {
	values, err := FromListValue(in)
	if err != nil {
		return nil, grpcinfra.ToStatus(err)
	}

	result, err := s.service.Aggregate(ctx, &dataapp.AggregateCommand{
		Transport: dataapp.TransportGRPC,
		Data:      values,
	})
	if err != nil {
		return nil, grpcinfra.ToStatus(err)
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"string_len":    structpb.NewNumberValue(float64(result.StringCount)),
		"int_sum":       structpb.NewNumberValue(float64(result.IntegerSum)),
		"int_sum_exact": structpb.NewStringValue(strconv.FormatInt(result.IntegerSum, 10)),
	}}, nil
}

// FromListValue converts protobuf values to tagged values. Numbers keep the
// shortest decimal form of their double, so 3.0 becomes "3" and 1.5 stays a
// fraction.
func FromListValue(list *structpb.ListValue) ([]jsonvalue.Value, error) {
	values := make([]jsonvalue.Value, 0, len(list.GetValues()))
	for _, v := range list.GetValues() {
		converted, err := fromValue(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidRequest, err)
		}
		values = append(values, converted)
	}
	return values, nil
}

func fromValue(v *structpb.Value) (jsonvalue.Value, error) {
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return jsonvalue.String(kind.StringValue), nil
	case *structpb.Value_NumberValue:
		return jsonvalue.Number(strconv.FormatFloat(kind.NumberValue, 'f', -1, 64)), nil
	case *structpb.Value_BoolValue:
		return jsonvalue.Bool(kind.BoolValue), nil
	case *structpb.Value_StructValue:
		raw, err := kind.StructValue.MarshalJSON()
		if err != nil {
			return jsonvalue.Value{}, err
		}
		return jsonvalue.Raw(jsonvalue.KindObject, raw), nil
	case *structpb.Value_ListValue:
		raw, err := kind.ListValue.MarshalJSON()
		if err != nil {
			return jsonvalue.Value{}, err
		}
		return jsonvalue.Raw(jsonvalue.KindArray, raw), nil
	default:
		return jsonvalue.Null(), nil
	}
}
