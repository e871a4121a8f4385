/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 *
 * Package s3cache implements httpcache.Cache on top of Amazon S3 so cached
 * pairing feeds survive restarts of the scoresheet and can be shared between
 * the devices at one venue.
 */
package s3cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const defaultPrefix = "s3cache"

type Options struct {
	// Bucket is the S3 bucket name, e.g. "mybucket".
	Bucket string
	// Prefix is prepended to every object key; defaults to "s3cache".
	Prefix string
	// Gzip compresses entries on Set and decompresses them on Get. Object
	// keys get a ".gz" suffix.
	Gzip bool
	// LogErrors logs failures other than cache misses.
	LogErrors bool
}

// Cache stores and retrieves cached HTTP responses in Amazon S3.
type Cache struct {
	// Config and Client are populated by Init. Callers may set Client
	// themselves and skip Init.
	Config aws.Config
	Client *s3.Client

	opts Options
	ctx  context.Context
}

// New returns a Cache for the given bucket. Call Init before use unless a
// Client is supplied.
func New(ctx context.Context, opts Options) *Cache {
	if opts.Prefix == "" {
		opts.Prefix = defaultPrefix
	}
	return &Cache{
		ctx:  ctx,
		opts: opts,
	}
}

// Init loads the default AWS configuration (environment, shared config and
// credentials files) and checks that the bucket can be listed.
func (c *Cache) Init() error {
	var err error
	c.Config, err = config.LoadDefaultConfig(c.ctx)
	if err != nil {
		return fmt.Errorf("s3cache.init: failed to load AWS config: %w", err)
	}
	c.Client = s3.NewFromConfig(c.Config)

	if _, err = c.Client.HeadBucket(c.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.opts.Bucket),
	}); err != nil {
		return fmt.Errorf("s3cache.init: head bucket %s: %w", c.opts.Bucket, err)
	}
	if _, err = c.Client.ListObjectsV2(c.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.opts.Bucket),
		Prefix:  aws.String(c.opts.Prefix + "/"),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3cache.init: list objects %s: %w", c.opts.Bucket, err)
	}

	return nil
}

func (c *Cache) Get(key string) ([]byte, bool) {
	objKey := c.objectKey(key)
	resp, err := c.Client.GetObject(c.ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.opts.Bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		if !isMiss(err) {
			c.logf("s3cache.get: %v/%v: %v", c.opts.Bucket, objKey, err)
		}
		return nil, false
	}
	defer resp.Body.Close()

	var rdr io.Reader = resp.Body
	if c.opts.Gzip {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			c.logf("s3cache.get: %v/%v: open gzip: %v", c.opts.Bucket, objKey, err)
			return nil, false
		}
		defer gz.Close()
		rdr = gz
	}
	data, err := io.ReadAll(rdr)
	if err != nil {
		c.logf("s3cache.get: %v/%v: read: %v", c.opts.Bucket, objKey, err)
		return nil, false
	}

	return data, true
}

func (c *Cache) Set(key string, data []byte) {
	objKey := c.objectKey(key)
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.opts.Bucket),
		Key:    aws.String(objKey),
		Body:   bytes.NewReader(data),
	}
	if c.opts.Gzip {
		compressed, err := gzipBytes(data)
		if err != nil {
			c.logf("s3cache.set: %v/%v: gzip: %v", c.opts.Bucket, objKey, err)
			return
		}
		input.Body = bytes.NewReader(compressed)
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := c.Client.PutObject(c.ctx, input); err != nil {
		c.logf("s3cache.set: %v/%v: %v", c.opts.Bucket, objKey, err)
	}
}

func (c *Cache) Delete(key string) {
	objKey := c.objectKey(key)
	if _, err := c.Client.DeleteObject(c.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.opts.Bucket),
		Key:    aws.String(objKey),
	}); err != nil {
		c.logf("s3cache.delete: %v/%v: %v", c.opts.Bucket, objKey, err)
	}
}

// objectKey hashes the cache key (a URL) into a flat object name.
func (c *Cache) objectKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	objKey := path.Join(c.opts.Prefix, hex.EncodeToString(sum[:]))
	if c.opts.Gzip {
		objKey += ".gz"
	}
	return objKey
}

func (c *Cache) logf(format string, args ...any) {
	if c.opts.LogErrors {
		log.Printf(format, args...)
	}
}

func isMiss(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey"
}

func gzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(data); err != nil {
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
