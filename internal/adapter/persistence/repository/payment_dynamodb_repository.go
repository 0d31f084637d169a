package repository

import (
	"context"
	"errors"
	"time"

	"payhub/internal/domain/entities"
	"payhub/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const (
	defaultPaymentsTableName = "payments"
	externalReferenceIndex   = "external_reference-index"
	userIDIndex              = "user_id-index"
)

type paymentItem struct {
	ID                string `dynamodbav:"id"`
	UserID            string `dynamodbav:"user_id"`
	Amount            string `dynamodbav:"amount"`
	Currency          string `dynamodbav:"currency"`
	Method            string `dynamodbav:"method"`
	Description       string `dynamodbav:"description,omitempty"`
	Status            string `dynamodbav:"status"`
	ExternalReference string `dynamodbav:"external_reference,omitempty"`
	ErrorMessage      string `dynamodbav:"error_message,omitempty"`
	CreatedAt         string `dynamodbav:"created_at"`
	PaidAt            string `dynamodbav:"paid_at,omitempty"`
	CanceledAt        string `dynamodbav:"canceled_at,omitempty"`
	RefundedAt        string `dynamodbav:"refunded_at,omitempty"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: external_reference-index (PK: external_reference)
//   - GSI: user_id-index (PK: user_id)
//
// Amounts are stored as decimal strings; float attributes would lose the
// fixed-point guarantee the entity carries.
type PaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it)
}

func (r *PaymentDynamoRepository) GetByExternalReference(ctx context.Context, externalReference string) (entities.Payment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(externalReferenceIndex),
		KeyConditionExpression: aws.String("external_reference = :ref"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref": &types.AttributeValueMemberS{Value: externalReference},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Items) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it)
}

func (r *PaymentDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Payment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(userIDIndex),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Payment, 0, len(out.Items))
	for _, raw := range out.Items {
		var it paymentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		p, err := fromPaymentItem(it)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, nil
}

// Update persists the record only while the stored status still matches
// expectedStatus. A failed guard surfaces interfaces.ErrStatusConflict so the
// use case can reload and re-decide; this conditional write is the
// serialization point for concurrent transitions on one record.
func (r *PaymentDynamoRepository) Update(ctx context.Context, p entities.Payment, expectedStatus entities.PaymentStatus) (entities.Payment, error) {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id) AND #st = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
			"#st": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberS{Value: string(expectedStatus)},
		},
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return entities.Payment{}, interfaces.ErrStatusConflict
		}
		return entities.Payment{}, err
	}
	return p, nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:                p.ID,
		UserID:            p.UserID,
		Amount:            p.Amount.String(),
		Currency:          p.Currency,
		Method:            string(p.Method),
		Description:       p.Description,
		Status:            string(p.Status),
		ExternalReference: p.ExternalReference,
		ErrorMessage:      p.ErrorMessage,
		CreatedAt:         p.CreatedAt.UTC().Format(time.RFC3339Nano),
		PaidAt:            formatOptionalTime(p.PaidAt),
		CanceledAt:        formatOptionalTime(p.CanceledAt),
		RefundedAt:        formatOptionalTime(p.RefundedAt),
	}
}

func fromPaymentItem(it paymentItem) (entities.Payment, error) {
	amount, err := decimal.NewFromString(it.Amount)
	if err != nil {
		return entities.Payment{}, err
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.Payment{
		ID:                it.ID,
		UserID:            it.UserID,
		Amount:            amount,
		Currency:          it.Currency,
		Method:            entities.PaymentMethod(it.Method),
		Description:       it.Description,
		Status:            entities.PaymentStatus(it.Status),
		ExternalReference: it.ExternalReference,
		ErrorMessage:      it.ErrorMessage,
		CreatedAt:         createdAt,
		PaidAt:            parseOptionalTime(it.PaidAt),
		CanceledAt:        parseOptionalTime(it.CanceledAt),
		RefundedAt:        parseOptionalTime(it.RefundedAt),
	}, nil
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseOptionalTime(v string) *time.Time {
	if v == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return nil
	}
	return &t
}
