package models

import (
	"bitbucket.org/mmdatafocus/pos_backend/utils"
)

type RedisCleaner interface {
	RemoveInstanceRedis() error // remove one
	RemoveAllRedis() error      // remove cached list
}

// remove both item & list
func RemoveRedisBoth[T RedisCleaner](obj T) error {
	if err := obj.RemoveInstanceRedis(); err != nil {
		return err
	}
	if err := obj.RemoveAllRedis(); err != nil {
		return err
	}
	return nil
}

func (obj Subsidiary) RemoveInstanceRedis() error {
	return utils.RemoveRedisItem[Subsidiary](obj.ID)
}

func (obj Subsidiary) RemoveAllRedis() error {
	return utils.RemoveRedisList[Subsidiary](obj.CompanyId)
}

func (obj Employee) RemoveInstanceRedis() error {
	return utils.RemoveRedisItem[Employee](obj.ID)
}

func (obj Employee) RemoveAllRedis() error {
	return utils.RemoveRedisList[Employee](obj.CompanyId)
}

func (obj Product) RemoveInstanceRedis() error {
	return utils.RemoveRedisItem[Product](obj.ID)
}

func (obj Product) RemoveAllRedis() error {
	return utils.RemoveRedisList[Product](obj.CompanyId)
}

func (obj Category) RemoveInstanceRedis() error {
	return utils.RemoveRedisItem[Category](obj.ID)
}

func (obj Category) RemoveAllRedis() error {
	return utils.RemoveRedisList[Category](obj.CompanyId)
}

func (obj ClientSupplier) RemoveInstanceRedis() error {
	return utils.RemoveRedisItem[ClientSupplier](obj.ID)
}

func (obj ClientSupplier) RemoveAllRedis() error {
	return utils.RemoveRedisList[ClientSupplier](obj.CompanyId)
}
