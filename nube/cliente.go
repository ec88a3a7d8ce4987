package nube

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ClienteS3 contiene las operaciones S3 que usa el archivador.
// *s3.Client la implementa; los tests usan un mock.
type ClienteS3 interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// CrearClienteS3 crea un cliente S3 con credenciales estáticas y direccionamiento por ruta,
// como requieren los servicios compatibles (Garage, MinIO)
func CrearClienteS3(ctx context.Context, cfg ConfiguracionS3) (*s3.Client, error) {
	cfg.AplicarDefaults()
	if err := cfg.Validar(); err != nil {
		return nil, err
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("error al cargar configuración AWS: %v", err)
	}

	cliente := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})
	return cliente, nil
}

// asegurarBucket crea el bucket si no existe
func asegurarBucket(ctx context.Context, cliente ClienteS3, bucket string) error {
	_, err := cliente.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err == nil {
		return nil
	}
	loggerPrint(LOG_NUBE, "El bucket %s no existe, intentando crearlo...", bucket)
	_, err = cliente.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return fmt.Errorf("error al crear bucket: %w", err)
	}
	loggerPrint(LOG_NUBE, "Bucket %s creado exitosamente", bucket)
	return nil
}
