package paramstore

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// SSMClient is the subset of the Systems Manager API used by SSM.
type SSMClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// SSM reads parameters from AWS Systems Manager Parameter Store.
type SSM struct {
	Client SSMClient
}

// NewSSM returns a Getter backed by client.
func NewSSM(client SSMClient) *SSM {
	return &SSM{Client: client}
}

// Get performs a single GetParameter call. Errors are returned as *LookupError.
func (s *SSM) Get(ctx context.Context, name string) (string, error) {
	out, err := s.Client.GetParameter(ctx, &ssm.GetParameterInput{
		Name: aws.String(name),
	})
	if err != nil {
		return "", convertError(name, err)
	}
	if out == nil || out.Parameter == nil || out.Parameter.Value == nil {
		return "", &LookupError{Name: name, Err: errors.New("response carried no value")}
	}
	return aws.ToString(out.Parameter.Value), nil
}

func convertError(name string, err error) error {
	var notFound *types.ParameterNotFound
	var versionNotFound *types.ParameterVersionNotFound
	if errors.As(err, &notFound) || errors.As(err, &versionNotFound) {
		return &LookupError{Name: name, NotFound: true, Err: err}
	}
	return &LookupError{Name: name, Err: err}
}
