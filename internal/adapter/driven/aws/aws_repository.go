package aws

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/directconnect"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snsTypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/aws-dx-metrics-report/internal/domain/entity"
	"github.com/diillson/aws-dx-metrics-report/internal/domain/repository"
)

// AWSRepositoryImpl implementa o AWSRepository com cache de clientes.
type AWSRepositoryImpl struct {
	profile     string
	region      string
	cfg         *aws.Config
	clientCache map[string]interface{}
	mu          sync.Mutex
}

// NewAWSRepository cria uma nova implementação do AWSRepository.
// profile e region vazios usam a cadeia padrão de credenciais e região do SDK.
func NewAWSRepository(profile, region string) repository.AWSRepository {
	return &AWSRepositoryImpl{
		profile:     profile,
		region:      region,
		clientCache: make(map[string]interface{}),
	}
}

func (r *AWSRepositoryImpl) getAWSConfig(ctx context.Context) (aws.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cfg != nil {
		return *r.cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if r.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(r.profile))
	}
	if r.region != "" {
		opts = append(opts, config.WithRegion(r.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %q: %w", r.profile, err)
	}

	r.cfg = &cfg
	return cfg, nil
}

func (r *AWSRepositoryImpl) getServiceClient(ctx context.Context, region, service string) (interface{}, error) {
	cacheKey := fmt.Sprintf("%s-%s", region, service)

	r.mu.Lock()
	if client, ok := r.clientCache[cacheKey]; ok {
		r.mu.Unlock()
		return client, nil
	}
	r.mu.Unlock()

	cfg, err := r.getAWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	regionalCfg := cfg.Copy()
	if region != "" {
		regionalCfg.Region = region
	}

	var client interface{}
	switch service {
	case "cloudwatch":
		client = cloudwatch.NewFromConfig(regionalCfg)
	case "sns":
		client = sns.NewFromConfig(regionalCfg)
	case "s3":
		client = s3.NewFromConfig(regionalCfg)
	case "sts":
		client = sts.NewFromConfig(regionalCfg)
	case "directconnect":
		client = directconnect.NewFromConfig(regionalCfg)
	case "lambda":
		client = lambda.NewFromConfig(regionalCfg)
	case "logs":
		client = cloudwatchlogs.NewFromConfig(regionalCfg)
	default:
		return nil, fmt.Errorf("unsupported service: %s", service)
	}

	r.mu.Lock()
	r.clientCache[cacheKey] = client
	r.mu.Unlock()

	return client, nil
}

// GetMetricWidgetImage renderiza o widget no CloudWatch e devolve o PNG.
func (r *AWSRepositoryImpl) GetMetricWidgetImage(ctx context.Context, widgetJSON string) ([]byte, error) {
	client, err := r.getServiceClient(ctx, r.region, "cloudwatch")
	if err != nil {
		return nil, err
	}
	cwClient := client.(*cloudwatch.Client)

	out, err := cwClient.GetMetricWidgetImage(ctx, &cloudwatch.GetMetricWidgetImageInput{
		MetricWidget: aws.String(widgetJSON),
		OutputFormat: aws.String("png"),
	})
	if err != nil {
		return nil, fmt.Errorf("error getting metric widget image: %w", err)
	}
	return out.MetricWidgetImage, nil
}

// Publish publica a mensagem no tópico SNS, na região indicada pelo ARN.
func (r *AWSRepositoryImpl) Publish(ctx context.Context, msg entity.NotificationMessage) (string, error) {
	client, err := r.getServiceClient(ctx, regionFromARN(msg.TopicARN), "sns")
	if err != nil {
		return "", err
	}
	snsClient := client.(*sns.Client)

	attributes := make(map[string]snsTypes.MessageAttributeValue, len(msg.Attributes))
	for name, attr := range msg.Attributes {
		attributes[name] = snsTypes.MessageAttributeValue{
			DataType:    aws.String(attr.DataType),
			StringValue: aws.String(attr.StringValue),
		}
	}

	out, err := snsClient.Publish(ctx, &sns.PublishInput{
		TopicArn:          aws.String(msg.TopicARN),
		Subject:           aws.String(msg.Subject),
		Message:           aws.String(msg.Body),
		MessageAttributes: attributes,
	})
	if err != nil {
		return "", fmt.Errorf("error publishing to %s: %w", msg.TopicARN, err)
	}
	return aws.ToString(out.MessageId), nil
}

// PutReportImage guarda o PNG do relatório no bucket informado.
func (r *AWSRepositoryImpl) PutReportImage(ctx context.Context, bucket string, generatedAt time.Time, image []byte) (entity.ArchivedImage, error) {
	client, err := r.getServiceClient(ctx, r.region, "s3")
	if err != nil {
		return entity.ArchivedImage{}, err
	}
	s3Client := client.(*s3.Client)

	key := archiveKey(generatedAt)
	out, err := s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(image),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return entity.ArchivedImage{}, fmt.Errorf("error uploading s3://%s/%s: %w", bucket, key, err)
	}

	return entity.ArchivedImage{
		Bucket: bucket,
		Key:    key,
		ETag:   strings.Trim(aws.ToString(out.ETag), `"`),
	}, nil
}

func (r *AWSRepositoryImpl) GetAccountID(ctx context.Context) (string, error) {
	client, err := r.getServiceClient(ctx, "us-east-1", "sts")
	if err != nil {
		return "", err
	}
	stsClient := client.(*sts.Client)

	result, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting account ID for profile %q: %w", r.profile, err)
	}
	return aws.ToString(result.Account), nil
}

// ListVirtualInterfaces lista os virtual interfaces do Direct Connect da região configurada.
func (r *AWSRepositoryImpl) ListVirtualInterfaces(ctx context.Context) ([]entity.VirtualInterfaceInfo, error) {
	client, err := r.getServiceClient(ctx, r.region, "directconnect")
	if err != nil {
		return nil, err
	}
	dxClient := client.(*directconnect.Client)

	out, err := dxClient.DescribeVirtualInterfaces(ctx, &directconnect.DescribeVirtualInterfacesInput{})
	if err != nil {
		return nil, fmt.Errorf("error describing virtual interfaces: %w", err)
	}

	vifs := make([]entity.VirtualInterfaceInfo, 0, len(out.VirtualInterfaces))
	for _, vif := range out.VirtualInterfaces {
		vifs = append(vifs, entity.VirtualInterfaceInfo{
			ConnectionID:         aws.ToString(vif.ConnectionId),
			VirtualInterfaceID:   aws.ToString(vif.VirtualInterfaceId),
			VirtualInterfaceName: aws.ToString(vif.VirtualInterfaceName),
			VirtualInterfaceType: aws.ToString(vif.VirtualInterfaceType),
			State:                string(vif.VirtualInterfaceState),
			Vlan:                 vif.Vlan,
			Region:               aws.ToString(vif.Region),
		})
	}
	return vifs, nil
}

// InvokeReportFunction executa a função publicada de forma síncrona.
func (r *AWSRepositoryImpl) InvokeReportFunction(ctx context.Context, functionName string) (entity.InvocationResult, error) {
	client, err := r.getServiceClient(ctx, r.region, "lambda")
	if err != nil {
		return entity.InvocationResult{}, err
	}
	lambdaClient := client.(*lambda.Client)

	out, err := lambdaClient.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: aws.String(functionName),
		Payload:      []byte(`{"source":"dx-report.cli"}`),
	})
	if err != nil {
		return entity.InvocationResult{}, fmt.Errorf("error invoking %s: %w", functionName, err)
	}
	if out.FunctionError != nil {
		return entity.InvocationResult{}, fmt.Errorf("function %s failed (%s): %s", functionName, aws.ToString(out.FunctionError), string(out.Payload))
	}
	return decodeInvocationResult(out.Payload)
}

// GetRecentInvocations lê as linhas de resultado do log group da função desde since.
func (r *AWSRepositoryImpl) GetRecentInvocations(ctx context.Context, functionName string, since time.Time) ([]entity.InvocationRecord, error) {
	client, err := r.getServiceClient(ctx, r.region, "logs")
	if err != nil {
		return nil, err
	}
	logsClient := client.(*cloudwatchlogs.Client)

	logGroup := "/aws/lambda/" + functionName
	paginator := cloudwatchlogs.NewFilterLogEventsPaginator(logsClient, &cloudwatchlogs.FilterLogEventsInput{
		LogGroupName:  aws.String(logGroup),
		StartTime:     aws.Int64(since.UnixMilli()),
		FilterPattern: aws.String(fmt.Sprintf("%q", entity.ResultLogPrefix)),
	})

	var records []entity.InvocationRecord
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error filtering log events in %s: %w", logGroup, err)
		}
		for _, event := range page.Events {
			message, ok := entity.ParseResultLine(aws.ToString(event.Message))
			if !ok {
				continue
			}
			records = append(records, entity.InvocationRecord{
				Timestamp: time.UnixMilli(aws.ToInt64(event.Timestamp)).UTC(),
				LogStream: aws.ToString(event.LogStreamName),
				Message:   message.Body,
				Success:   message.Succeeded(),
			})
		}
	}
	return records, nil
}

// regionFromARN extrai a região de um ARN; devolve "" se o ARN for inválido.
func regionFromARN(arn string) string {
	parts := strings.SplitN(arn, ":", 6)
	if len(parts) < 6 || parts[0] != "arn" {
		return ""
	}
	return parts[3]
}

func archiveKey(generatedAt time.Time) string {
	ts := generatedAt.UTC()
	return fmt.Sprintf("reports/%s/dx-report-%s.png", ts.Format("2006/01/02"), ts.Format("20060102T150405Z"))
}

func decodeInvocationResult(payload []byte) (entity.InvocationResult, error) {
	var result entity.InvocationResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return entity.InvocationResult{}, fmt.Errorf("error decoding function response: %w", err)
	}
	return result, nil
}
