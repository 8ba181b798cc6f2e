package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/dmitrijs2005/classfunds/internal/access"
	sc "github.com/dmitrijs2005/classfunds/internal/config"
	"github.com/dmitrijs2005/classfunds/internal/models"
	"github.com/dmitrijs2005/classfunds/internal/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Test seams for the S3 client plumbing.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ReportService exports classroom ledger statements as CSV files to an
// S3-compatible object store and hands out short-lived download links.
type ReportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewReportService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *ReportService {
	return &ReportService{db: db, repomanager: m, config: cfg}
}

func statementStorageKey(classroomID string) string {
	d := time.Now()
	return fmt.Sprintf("statements/%s/%d/%d/%v.csv", classroomID, d.Year(), d.Month(), uuid.New())
}

func (s *ReportService) getClients() (*s3.Client, *s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, newS3PresignClient(client), nil
}

// ExportStatement builds a CSV statement of the classroom ledger, uploads
// it to the configured bucket and returns a presigned download URL valid
// for 15 minutes. Owner only.
func (s *ReportService) ExportStatement(ctx context.Context, actorID, classroomID string) (string, error) {
	classroom, err := s.repomanager.Classrooms(s.db).GetByID(ctx, classroomID)
	if err != nil {
		return "", err
	}
	if err := access.RequireOwner(classroom, actorID); err != nil {
		return "", err
	}

	txs, err := s.repomanager.Transactions(s.db).ListByClassroom(ctx, classroomID)
	if err != nil {
		return "", err
	}

	body, err := buildStatementCSV(txs)
	if err != nil {
		return "", err
	}

	client, presignClient, err := s.getClients()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	key := statementStorageKey(classroomID)

	if _, err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/csv"),
	}); err != nil {
		return "", fmt.Errorf("error uploading statement: %w", err)
	}

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", fmt.Errorf("error presigning statement url: %w", err)
	}

	return req.URL, nil
}

func buildStatementCSV(txs []*models.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"id", "student_id", "type", "amount", "note", "created_at"}); err != nil {
		return nil, err
	}

	for _, tx := range txs {
		studentID := ""
		if tx.StudentID != nil {
			studentID = *tx.StudentID
		}
		record := []string{
			tx.ID,
			studentID,
			string(tx.Type),
			tx.Amount.String(),
			tx.Note,
			tx.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
