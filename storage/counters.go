package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/mrcliffo/nfl-market-pulse/logging"
)

// DynamoCounterStorage keeps one item per counter key: PK is the namespace,
// SK is built by sortKey. MarketID and Token are stored as plain attributes so
// GetAll never has to parse SK.
type DynamoCounterStorage struct {
	Client    *dynamodb.Client
	TableName string
}

var _ CounterStorage = (*DynamoCounterStorage)(nil)

type counterItem struct {
	Namespace string `dynamodbav:"PK"`
	SortKey   string `dynamodbav:"SK"`
	MarketID  string `dynamodbav:"MarketID"`
	Token     string `dynamodbav:"Token"`
	Counters
}

// sortKey is the market id for market counters. Window keys carry the market
// id's length first, so ("a:b", "c") and ("a", "b:c") map to different items.
func sortKey(key CounterKey) string {
	if key.Namespace == NamespaceWindow {
		return fmt.Sprintf("%d:%s:%s", len(key.MarketID), key.MarketID, key.Token)
	}
	return key.MarketID
}

func counterKeyAttributes(key CounterKey) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: string(key.Namespace)},
		"SK": &types.AttributeValueMemberS{Value: sortKey(key)},
	}
}

// Increment is a single UpdateItem: ADD creates missing attributes at zero, so
// the first vote for a key creates the item and DynamoDB does the arithmetic.
func (s *DynamoCounterStorage) Increment(ctx context.Context, key CounterKey, choice Choice) (Counters, error) {
	attr := "Yes"
	switch choice {
	case ChoiceYes:
	case ChoiceNo:
		attr = "No"
	default:
		return Counters{}, ErrInvalidChoice
	}

	now, err := attributevalue.Marshal(time.Now().UTC())
	if err != nil {
		return Counters{}, err
	}

	out, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(s.TableName),
		Key:              counterKeyAttributes(key),
		UpdateExpression: aws.String("ADD #choice :one, #total :one SET #updated = :now, #market = :market, #token = :token"),
		ExpressionAttributeNames: map[string]string{
			"#choice":  attr,
			"#total":   "Total",
			"#updated": "UpdatedAt",
			"#market":  "MarketID",
			"#token":   "Token",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one":    &types.AttributeValueMemberN{Value: "1"},
			":now":    now,
			":market": &types.AttributeValueMemberS{Value: key.MarketID},
			":token":  &types.AttributeValueMemberS{Value: key.Token},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		logging.Log.Errorf("COUNTER: increment of %s failed: %v", key, err)
		return Counters{}, err
	}

	var item counterItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &item); err != nil {
		logging.Log.Errorf("COUNTER: failed to unmarshal %s: %v", key, err)
		return Counters{}, err
	}
	return item.Counters, nil
}

func (s *DynamoCounterStorage) Get(ctx context.Context, key CounterKey) (Counters, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       counterKeyAttributes(key),
	})
	if err != nil {
		logging.Log.Errorf("COUNTER: GetItem for %s failed: %v", key, err)
		return Counters{}, err
	}
	if out.Item == nil {
		return Counters{}, nil
	}

	var item counterItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		logging.Log.Errorf("COUNTER: failed to unmarshal %s: %v", key, err)
		return Counters{}, err
	}
	return item.Counters, nil
}

func (s *DynamoCounterStorage) GetAll(ctx context.Context, namespace Namespace) (map[CounterKey]Counters, error) {
	result := make(map[CounterKey]Counters)
	var lastEvaluatedKey map[string]types.AttributeValue

	for {
		out, err := s.Client.Query(ctx, &dynamodb.QueryInput{
			TableName:              &s.TableName,
			KeyConditionExpression: aws.String("PK = :ns"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":ns": &types.AttributeValueMemberS{Value: string(namespace)},
			},
			ExclusiveStartKey: lastEvaluatedKey,
		})
		if err != nil {
			logging.Log.Errorf("COUNTER: query for namespace %s failed: %v", namespace, err)
			return nil, err
		}

		var items []counterItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			logging.Log.Errorf("COUNTER: failed to unmarshal namespace %s: %v", namespace, err)
			return nil, err
		}
		for _, item := range items {
			key := CounterKey{Namespace: namespace, MarketID: item.MarketID, Token: item.Token}
			result[key] = item.Counters
		}

		if out.LastEvaluatedKey == nil {
			return result, nil
		}
		lastEvaluatedKey = out.LastEvaluatedKey
	}
}
