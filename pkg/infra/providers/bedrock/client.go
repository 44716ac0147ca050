package bedrock

import (
	"context"
	"fmt"
	"strings"

	"github.com/NeuralTrust/SafeChat/pkg/config"
	"github.com/NeuralTrust/SafeChat/pkg/infra/providers"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	stsTypes "github.com/aws/aws-sdk-go-v2/service/sts/types"
	"github.com/mitchellh/mapstructure"
)

const (
	defaultRegion      = "us-east-1"
	defaultModel       = "anthropic.claude-3-haiku-20240307-v1:0"
	defaultSessionName = "SafeChatBedrockSession"
)

type options struct {
	Region       string `mapstructure:"region"`
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	SessionToken string `mapstructure:"session_token"`
	RoleARN      string `mapstructure:"role_arn"`
}

type converseAPI interface {
	Converse(
		ctx context.Context,
		params *bedrockruntime.ConverseInput,
		optFns ...func(*bedrockruntime.Options),
	) (*bedrockruntime.ConverseOutput, error)
}

type client struct {
	name    string
	cfg     config.ProviderConfig
	runtime converseAPI
}

func NewBedrockClient(ctx context.Context, name string, cfg config.ProviderConfig) (providers.Backend, error) {
	var opts options
	if len(cfg.Options) > 0 {
		if err := mapstructure.Decode(cfg.Options, &opts); err != nil {
			return nil, fmt.Errorf("invalid bedrock options: %w", err)
		}
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	awsCfg, err := buildAwsConfig(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &client{
		name:    name,
		cfg:     cfg,
		runtime: bedrockruntime.NewFromConfig(awsCfg),
	}, nil
}

func (c *client) Name() string {
	return c.name
}

func (c *client) Generate(ctx context.Context, req providers.Request) (*providers.Response, error) {
	out, err := c.runtime.Converse(ctx, c.input(req))
	if err != nil {
		return nil, fmt.Errorf("bedrock converse failed: %w", err)
	}

	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return nil, providers.ErrEmptyResponse
	}
	var text strings.Builder
	for _, block := range msg.Value.Content {
		if t, ok := block.(*types.ContentBlockMemberText); ok {
			text.WriteString(t.Value)
		}
	}

	var usage providers.Usage
	if out.Usage != nil {
		usage = providers.Usage{
			PromptTokens:     int(aws.ToInt32(out.Usage.InputTokens)),
			CompletionTokens: int(aws.ToInt32(out.Usage.OutputTokens)),
			TotalTokens:      int(aws.ToInt32(out.Usage.TotalTokens)),
		}
	}
	return providers.NewResponse(c.name, c.cfg.Model, text.String(), "", usage)
}

func (c *client) input(req providers.Request) *bedrockruntime.ConverseInput {
	in := &bedrockruntime.ConverseInput{
		ModelId:  aws.String(c.cfg.Model),
		Messages: messages(providers.Turns(req)),
	}
	if prompt := providers.SystemPrompt(req); prompt != "" {
		in.System = []types.SystemContentBlock{&types.SystemContentBlockMemberText{Value: prompt}}
	}
	if c.cfg.MaxTokens > 0 || c.cfg.Temperature > 0 {
		inference := &types.InferenceConfiguration{}
		if c.cfg.MaxTokens > 0 {
			inference.MaxTokens = aws.Int32(int32(c.cfg.MaxTokens)) //nolint:gosec
		}
		if c.cfg.Temperature > 0 {
			inference.Temperature = aws.Float32(float32(c.cfg.Temperature))
		}
		in.InferenceConfig = inference
	}
	return in
}

// messages enforces the Converse shape: the first turn is from the user and roles alternate.
// Consecutive turns of the same role are merged.
func messages(turns []providers.Turn) []types.Message {
	var out []types.Message
	for _, turn := range turns {
		role := types.ConversationRoleUser
		if turn.Role == providers.RoleAssistant {
			role = types.ConversationRoleAssistant
		}
		if len(out) == 0 && role != types.ConversationRoleUser {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Role == role {
			out[n-1].Content = append(out[n-1].Content, &types.ContentBlockMemberText{Value: turn.Content})
			continue
		}
		out = append(out, types.Message{
			Role:    role,
			Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: turn.Content}},
		})
	}
	return out
}

func buildAwsConfig(ctx context.Context, opts options) (aws.Config, error) {
	region := opts.Region
	if region == "" {
		region = defaultRegion
	}
	if opts.AccessKey == "" {
		return awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	}
	if opts.RoleARN != "" {
		creds, err := assumeRole(ctx, opts.AccessKey, opts.SecretKey, opts.RoleARN, region)
		if err != nil {
			return aws.Config{}, err
		}
		return loadAWSConfig(ctx, *creds.AccessKeyId, *creds.SecretAccessKey, *creds.SessionToken, region)
	}
	return loadAWSConfig(ctx, opts.AccessKey, opts.SecretKey, opts.SessionToken, region)
}

func loadAWSConfig(ctx context.Context, accessKey, secretKey, sessionToken, region string) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(aws.CredentialsProviderFunc(
			func(ctx context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     accessKey,
					SecretAccessKey: secretKey,
					SessionToken:    sessionToken,
				}, nil
			},
		)),
		awsconfig.WithRegion(region),
	)
}

func assumeRole(ctx context.Context, accessKey, secretKey, roleARN, region string) (*stsTypes.Credentials, error) {
	baseCfg, err := loadAWSConfig(ctx, accessKey, secretKey, "", region)
	if err != nil {
		return nil, fmt.Errorf("unable to load base AWS config: %w", err)
	}
	output, err := sts.NewFromConfig(baseCfg).AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(roleARN),
		RoleSessionName: aws.String(defaultSessionName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assume role: %w", err)
	}
	return output.Credentials, nil
}
